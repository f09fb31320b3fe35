package server

import (
	"errors"
	"fmt"
	"net/url"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"treehealth/internal/domain"
	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/domain/service/presentation"
	"treehealth/internal/domain/value"
	"treehealth/internal/infrastructure/render"
	"treehealth/pkg/errcodes"
	"treehealth/pkg/rest"
)

const noDataMessage = "Chart is unavailable"

func newRESTChart(spec presentation.ChartSpec) *rest.Chart {
	return &rest.Chart{
		Kind:       string(spec.Kind),
		Title:      spec.Title,
		XField:     spec.XField,
		YField:     spec.YField,
		ColorField: spec.ColorField,
		Grouped:    spec.Grouped,
		XAxisSide:  spec.XAxisSide,
		XMax:       spec.XMax,
		Height:     spec.Size.Height,
		Width:      spec.Size.Width,
		Categories: spec.Categories,
		Series: lo.Map(spec.Series, func(s presentation.Series, _ int) rest.Series {
			return rest.Series{
				Name: s.Name,
				Points: lo.Map(s.Points, func(p presentation.Point, _ int) rest.Point {
					return rest.Point{Category: p.Category, Value: p.Value}
				}),
			}
		}),
	}
}

func newRESTChartView(view dashboard.ChartView) rest.ChartView {
	result := rest.ChartView{
		Borough: view.Selection.Borough.String(),
		Mode:    view.Selection.Mode.String(),
		Seq:     view.Seq,
	}

	if view.NoData() {
		result.NoData = newRESTError(view.Err)

		return result
	}

	result.Chart = newRESTChart(*view.Chart)
	result.VegaLite = render.VegaLite(*view.Chart)

	return result
}

// newRESTError выбирает код и сообщение для пользователя по ошибке.
func newRESTError(err error) *rest.Error {
	if err == nil {
		return &rest.Error{Code: rest.ErrorCode(errcodes.InternalServerError), Message: noDataMessage}
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return &rest.Error{Code: rest.ErrorCode(appErr.Code), Message: appErr.Description()}
	}

	code := failure.Code(err).String()
	if code == "" {
		code = errcodes.InternalServerError.String()
	}

	message := failure.Description(err)
	if message == "" {
		message = noDataMessage
	}

	return &rest.Error{Code: rest.ErrorCode(code), Message: message}
}

func newRESTOptions() rest.Options {
	selection := dashboard.DefaultSelection()

	return rest.Options{
		Boroughs:       lo.Map(value.Boroughs(), func(b value.Borough, _ int) string { return b.String() }),
		Modes:          lo.Map(value.AnalysisModes(), func(m value.AnalysisMode, _ int) string { return m.String() }),
		DefaultBorough: selection.Borough.String(),
		DefaultMode:    selection.Mode.String(),
	}
}

// selectionEvents переводит частичный выбор в события редьюсера. Пустые
// поля не меняются.
func selectionEvents(selection rest.Selection) []dashboard.Event {
	var events []dashboard.Event

	if selection.Borough != "" {
		events = append(events, dashboard.BoroughSelected(selection.Borough))
	}

	if selection.Mode != "" {
		events = append(events, dashboard.ModeSelected(selection.Mode))
	}

	return events
}

// newDomainSelection читает параметры borough и mode поверх выбора по
// умолчанию.
func newDomainSelection(query url.Values) (dashboard.Selection, error) {
	state := dashboard.DefaultState()

	for _, ev := range selectionEvents(rest.Selection{Borough: query.Get("borough"), Mode: query.Get("mode")}) {
		var err error
		if state, err = dashboard.Update(state, ev); err != nil {
			return dashboard.Selection{}, fmt.Errorf("dashboard.Update: %w", err)
		}
	}

	return state.Selection, nil
}
