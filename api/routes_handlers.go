package api

import "kestrel-sir/api/handlers"

type routeHandlers struct {
	reports *handlers.ReportsHandler
	form    *handlers.FormHandler
	logs    *handlers.LogsHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		reports: handlers.NewReportsHandler(s.cfg, s.deps.ReportsSvc, s.deps.Audits, s.logger),
		form:    handlers.NewFormHandler(s.cfg, s.deps.ReportsSvc, s.deps.Drafts, s.deps.Sender, s.deps.Audits, s.logger),
		logs:    handlers.NewLogsHandler(s.deps.Audits),
	}
}
