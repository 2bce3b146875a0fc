package handlers

import (
	"context"

	"github.com/jmoiron/sqlx"

	"alhaja/internal/catalog"
	"alhaja/internal/config"
	"alhaja/internal/domain"
	applog "alhaja/internal/log"
	"alhaja/internal/realtime"
	"alhaja/internal/refresh"
	"alhaja/internal/repos"
	"alhaja/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	AdminHandler   *AdminHandler
	CalcHandler    *CalcHandler

	Catalog *services.CatalogService
}

// logSink carries the coordinator's loud-refresh signals to the log. The
// presentation layer consuming this API owns the actual spinner and toast.
type logSink struct{ name string }

func (s logSink) Loading(on bool) {
	applog.Background("info", "refresh."+s.name+".loading", nil, map[string]any{"on": on})
}

func (s logSink) ReadFailed(err error) {
	applog.Background("error", "refresh."+s.name+".read_failed", err, nil)
}

// NewDeps wires repos, coordinators, services and handlers, and subscribes
// the coordinators to push change signals (always silent refreshes).
func NewDeps(ctx context.Context, db *sqlx.DB, cfg config.Config, notifier realtime.Notifier) *Deps {
	prodRepo := repos.NewProductRepo(db)
	assetRepo := repos.NewAssetRepo(db)

	prodCoord := refresh.NewCoordinator(
		func(context.Context) ([]domain.Product, error) { return prodRepo.List() },
		[]domain.Product{}, cfg.FetchTimeout, logSink{name: "products"})
	assetCoord := refresh.NewCoordinator(
		func(context.Context) ([]domain.InternalAsset, error) { return assetRepo.List() },
		[]domain.InternalAsset{}, cfg.FetchTimeout, logSink{name: "assets"})

	catalogSvc := services.NewCatalogService(prodCoord, assetCoord, catalog.NewDebouncer(cfg.SearchDebounce))
	productSvc := services.NewProductService(prodRepo, notifier)
	assetSvc := services.NewAssetService(assetRepo, notifier)
	calcSvc := services.NewCalcService(prodRepo)

	// Push notifications carry no payload; the only reaction is a silent
	// re-pull of the matching collection.
	notifier.Subscribe(realtime.EntityProduct, func() { prodCoord.Refresh(ctx, false) })
	notifier.Subscribe(realtime.EntityAsset, func() { assetCoord.Refresh(ctx, false) })
	notifier.Subscribe(realtime.EntitySettings, func() {
		prodCoord.Refresh(ctx, false)
		assetCoord.Refresh(ctx, false)
	})

	// first pull so the first page render has data
	prodCoord.RefreshSync(ctx, false)
	assetCoord.RefreshSync(ctx, false)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc, Products: productSvc, Assets: assetSvc},
		CalcHandler:    &CalcHandler{Calc: calcSvc},
		Catalog:        catalogSvc,
	}
}
