package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kyulab/labms/internal/domain"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside or outside an explicit transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// db resolves the active querier: the transaction carried in ctx when
// WithTx is in flight, the pool otherwise. Embedded by every repository.
type db struct {
	pool *pgxpool.Pool
}

func (d db) q(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return d.pool
}

type Store struct {
	pool          *pgxpool.Pool
	users         *UserRepo
	researchers   *ResearcherRepo
	projects      *ProjectRepo
	tasks         *TaskRepo
	boards        *BoardRepo
	boardComments *BoardCommentRepo
	notices       *NoticeRepo
	comments      *CommentRepo
	histories     *ProjectHistoryRepo
	seminars      *SeminarRepo
	labInfo       *LabInfoRepo
	researchAreas *ResearchAreaRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	d := db{pool: pool}

	return &Store{
		pool:          pool,
		users:         &UserRepo{d},
		researchers:   &ResearcherRepo{d},
		projects:      &ProjectRepo{d},
		tasks:         &TaskRepo{d},
		boards:        &BoardRepo{d},
		boardComments: &BoardCommentRepo{d},
		notices:       &NoticeRepo{d},
		comments:      &CommentRepo{d},
		histories:     &ProjectHistoryRepo{d},
		seminars:      &SeminarRepo{d},
		labInfo:       &LabInfoRepo{d},
		researchAreas: &ResearchAreaRepo{d},
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// WithTx runs fn inside one transaction. Repository calls made with the
// ctx passed to fn share that transaction; any error rolls everything
// back. Used to keep a mutation and its history entry atomic, and to bind
// purge-then-delete cascades into a single commit.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.WithTx: begin: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("postgres.WithTx: rollback: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres.WithTx: commit: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate student id, email, username, area name).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) Users() domain.UserRepository                 { return s.users }
func (s *Store) Researchers() domain.ResearcherRepository     { return s.researchers }
func (s *Store) Projects() domain.ProjectRepository           { return s.projects }
func (s *Store) Tasks() domain.TaskRepository                 { return s.tasks }
func (s *Store) Boards() domain.BoardRepository               { return s.boards }
func (s *Store) BoardComments() domain.BoardCommentRepository { return s.boardComments }
func (s *Store) Notices() domain.NoticeRepository             { return s.notices }
func (s *Store) Comments() domain.CommentRepository           { return s.comments }
func (s *Store) Histories() domain.ProjectHistoryRepository   { return s.histories }
func (s *Store) Seminars() domain.SeminarRepository           { return s.seminars }
func (s *Store) LabInfo() domain.LabInfoRepository            { return s.labInfo }
func (s *Store) ResearchAreas() domain.ResearchAreaRepository { return s.researchAreas }
