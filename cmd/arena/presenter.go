package main

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/persist"
	"go.uber.org/zap"
)

// logPresenter stands in for a renderer: it logs handle lifecycle at debug
// level and ignores per-tick transforms.
type logPresenter struct {
	log *zap.Logger
}

func (p *logPresenter) Attach(handle uint32, visual string) {
	p.log.Debug("presenter attach", zap.Uint32("handle", handle), zap.String("visual", visual))
}

func (p *logPresenter) Sync(uint32, mgl64.Vec3, mgl64.Quat) {}

func (p *logPresenter) Detach(handle uint32) {
	p.log.Debug("presenter detach", zap.Uint32("handle", handle))
}

// discardLog drops combat log batches when no database is configured.
type discardLog struct{}

func (discardLog) WriteBatch(context.Context, int64, []persist.CombatEntry) error { return nil }
