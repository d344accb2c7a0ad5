package appbootstrap

import (
	"database/sql"

	"kestrel-sir/api"
	"kestrel-sir/config"
	"kestrel-sir/core/feed"
	"kestrel-sir/core/reports"
	"kestrel-sir/core/store"
	"kestrel-sir/core/submit"
	"kestrel-sir/core/utils"
)

type runtimeComposition struct {
	serverDeps api.ServerDeps
	workers    []api.BackgroundWorker
}

func composeRuntime(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) *runtimeComposition {
	drafts := store.NewDraftsStore(db, cfg.DBDriver)
	audits := store.NewAuditStore(db, cfg.DBDriver)

	feedClient := feed.NewClient(cfg.Feed, logger)
	reportsSvc := reports.NewService(feedClient, cfg.Feed.CacheTTL(), audits, logger)
	refresher := reports.NewRefresher(cfg.Feed, reportsSvc, logger)
	sender := submit.NewClient(cfg.Submit, logger)

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			Drafts:     drafts,
			Audits:     audits,
			ReportsSvc: reportsSvc,
			Sender:     sender,
		},
		workers: []api.BackgroundWorker{refresher},
	}
}
