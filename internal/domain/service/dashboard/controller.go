package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"treehealth/internal/domain/service/presentation"
	"treehealth/pkg/logx"
)

// ChartView то, что показывает область графика для выбора: график или
// ошибка вместо него.
type ChartView struct {
	Selection Selection
	Seq       uint64
	Chart     *presentation.ChartSpec
	Err       error
}

func (v ChartView) NoData() bool {
	return v.Chart == nil
}

// View получает каждый график, который контроллер решил показать.
type View interface {
	RenderChart(ctx context.Context, view ChartView)
}

type chartBuilder interface {
	Build(ctx context.Context, sel Selection) (presentation.ChartSpec, error)
}

// Controller упорядочивает изменения выбора одного дашборда. Цепочка
// выполняется вне блокировки, а результат попадает во View, только если его
// Seq последний выданный.
type Controller struct {
	mu       sync.Mutex
	state    State
	pipeline chartBuilder
	view     View
}

func NewController(pipeline chartBuilder, view View) *Controller {
	return &Controller{
		state:    DefaultState(),
		pipeline: pipeline,
		view:     view,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Handle применяет события по порядку и один раз пересчитывает график. Без
// событий это Refresh. Возвращаемый bool показывает, был ли график
// опубликован: устаревший результат возвращается, но не показывается. Если
// хотя бы одно событие невалидно, не применяется ни одно. При отмененном ctx
// возвращается ctx.Err() без публикации.
func (c *Controller) Handle(ctx context.Context, events ...Event) (ChartView, bool, error) {
	if len(events) == 0 {
		events = []Event{Refresh()}
	}

	c.mu.Lock()

	next := c.state

	for _, ev := range events {
		var err error

		next, err = Update(next, ev)
		if err != nil {
			c.mu.Unlock()

			return ChartView{}, false, err
		}
	}

	c.state = next
	c.mu.Unlock()

	view := ChartView{Selection: next.Selection, Seq: next.Seq}

	spec, err := c.pipeline.Build(ctx, next.Selection)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ChartView{}, false, ctxErr
		}

		logger(ctx).Warn(
			"chart unavailable",
			slog.String(logx.FieldBorough, next.Selection.Borough.String()),
			slog.String(logx.FieldMode, next.Selection.Mode.String()),
			logx.Error(err),
		)

		view.Err = err
	} else {
		view.Chart = &spec
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Seq != view.Seq {
		staleResponses.Inc()

		logger(ctx).Info(
			"stale chart discarded",
			slog.Uint64(logx.FieldSeq, view.Seq),
			slog.Uint64(logx.FieldLatestSeq, c.state.Seq),
		)

		return view, false, nil
	}

	c.view.RenderChart(ctx, view)

	return view, true, nil
}
