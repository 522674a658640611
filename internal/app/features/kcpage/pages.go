// internal/app/features/kcpage/pages.go
package kcpage

import (
	"github.com/dalemusser/authpages/internal/app/features/defaultpage"
	"github.com/dalemusser/authpages/internal/app/features/layout"
	"github.com/dalemusser/authpages/internal/app/features/login"
	"github.com/dalemusser/authpages/internal/app/system/metrics"
	"github.com/dalemusser/authpages/internal/domain/models"
	"go.uber.org/zap"
)

// NewStandard builds the dispatcher for the shipped pages: login.ftl gets the
// login page on the themed shell, everything else the default page on the
// stock shell, which may layer the identity server's default classes.
func NewStandard(themed, stock *layout.Renderer, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	d := NewDispatcher(defaultpage.New(stock), m, logger)
	d.Register(models.PageLogin, func() (Page, error) {
		return login.Load(themed)
	})
	return d
}
