package product

import (
	"github.com/stockswift/stockswift/internal/product/repository"
	"github.com/stockswift/stockswift/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
