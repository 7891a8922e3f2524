package sale

import (
	"github.com/stockswift/stockswift/internal/sale/repository"
	"github.com/stockswift/stockswift/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
