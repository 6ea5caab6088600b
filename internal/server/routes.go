package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/kyulab/labms/internal/api/v1"
	"github.com/kyulab/labms/internal/auth"
	"github.com/kyulab/labms/internal/store/postgres"
)

func registerPublicRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, svcs *services) {
	v1.RegisterAuthRoutes(api, authSvc)
	v1.RegisterPublicBoardRoutes(api, svcs.boards)
	v1.RegisterPublicNoticeRoutes(api, svcs.notices)
	v1.RegisterPublicSeminarRoutes(api, svcs.seminars)
	v1.RegisterPublicLabInfoRoutes(api, store)
	v1.RegisterResearchAreaRoutes(api, store)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, svcs *services) {
	v1.RegisterAccountRoutes(api, authSvc, svcs.identity)
	v1.RegisterProjectRoutes(api, svcs.projects, svcs.identity)
	v1.RegisterTaskRoutes(api, svcs.tasks, svcs.comments, svcs.identity)
	v1.RegisterBoardRoutes(api, svcs.boards, svcs.identity)
	v1.RegisterNoticeRoutes(api, svcs.notices, svcs.identity)
	v1.RegisterResearcherRoutes(api, store)
	v1.RegisterSeminarRoutes(api, svcs.seminars)
	v1.RegisterDashboardRoutes(api, svcs.dashboard)
}

func registerAdminRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, svcs *services) {
	v1.RegisterUserAdminRoutes(api, authSvc)
	v1.RegisterResearcherAdminRoutes(api, store)
	v1.RegisterSeminarAdminRoutes(api, svcs.seminars)
	v1.RegisterLabInfoAdminRoutes(api, store)
	v1.RegisterResearchAreaAdminRoutes(api, store)
}
