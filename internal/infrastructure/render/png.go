package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"treehealth/internal/domain"
	"treehealth/internal/domain/service/presentation"
	"treehealth/pkg/errcodes"
)

const (
	pngPaddingTop    = 72
	pngPaddingLeft   = 240
	pngPaddingRight  = 24
	pngPaddingBottom = 24
	pngBarSpacing    = 2
	pngAxisTicks     = 5
)

// PNG рисует spec как горизонтальную столбчатую диаграмму. go-chart
// растягивает каждый составной столбец на всю ось, поэтому столбцы
// дополняются до spec.XMax прозрачным сегментом.
func PNG(spec presentation.ChartSpec) ([]byte, error) {
	var bars []chart.StackedBar

	if spec.Grouped {
		bars = groupedBars(spec)
	} else {
		bars = stackedBars(spec)
	}

	if len(bars) == 0 {
		return nil, domain.NewError(errcodes.EmptyResult, "nothing to draw")
	}

	plotHeight := spec.Size.Height - pngPaddingTop - pngPaddingBottom
	barWidth := max(1, plotHeight/len(bars)-pngBarSpacing)

	for i := range bars {
		bars[i].Width = barWidth
	}

	graph := chart.StackedBarChart{
		Title:        spec.Title,
		Width:        spec.Size.Width,
		Height:       spec.Size.Height,
		IsHorizontal: true,
		BarSpacing:   pngBarSpacing,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    pngPaddingTop,
				Left:   pngPaddingLeft,
				Right:  pngPaddingRight,
				Bottom: pngPaddingBottom,
			},
		},
		Bars: bars,
	}

	// StackedBarChart умеет рисовать ось только снизу
	if spec.XAxisSide == presentation.AxisTop {
		graph.XAxis = chart.Style{Hidden: true}
		graph.Elements = []chart.Renderable{topAxis(spec.XMax)}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, domain.WrapError(fmt.Errorf("graph.Render: %w", err), errcodes.RenderFailed, "Chart could not be drawn")
	}

	return buf.Bytes(), nil
}

// topAxis рисует шкалу 0..xMax по верхнему краю холста. Столбцы дополнены до
// xMax, так что доля ширины холста соответствует значению на шкале.
func topAxis(xMax float64) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
			FontSize:    chart.DefaultAxisFontSize,
			FontColor:   chart.DefaultAxisColor,
		}.InheritFrom(defaults)

		style.GetStrokeOptions().WriteToRenderer(r)
		r.MoveTo(canvasBox.Left, canvasBox.Top)
		r.LineTo(canvasBox.Right, canvasBox.Top)
		r.Stroke()

		for i := 0; i <= pngAxisTicks; i++ {
			t := float64(i) / pngAxisTicks
			tx := canvasBox.Left + int(t*float64(canvasBox.Width()))

			style.GetStrokeOptions().WriteToRenderer(r)
			r.MoveTo(tx, canvasBox.Top)
			r.LineTo(tx, canvasBox.Top-chart.DefaultVerticalTickHeight)
			r.Stroke()

			text := tickLabel(t, xMax)

			style.GetTextOptions().WriteToRenderer(r)
			textBox := r.MeasureText(text)

			textX := tx - textBox.Width()/2
			switch i {
			case 0:
				textX = tx
			case pngAxisTicks:
				textX = canvasBox.Right - textBox.Width()
			}

			chart.Draw.Text(r, text, textX, canvasBox.Top-chart.DefaultXAxisMargin, style)
		}
	}
}

// tickLabel печатает доли в процентах, а оценки обычными числами.
func tickLabel(t, xMax float64) string {
	if xMax == 1 {
		return fmt.Sprintf("%0.0f%%", t*100)
	}

	return fmt.Sprintf("%0.0f", t*xMax)
}

// stackedBars дает по столбцу на категорию, по сегменту на серию.
func stackedBars(spec presentation.ChartSpec) []chart.StackedBar {
	index := make(map[string]int, len(spec.Categories))
	bars := make([]chart.StackedBar, len(spec.Categories))

	for i, category := range spec.Categories {
		index[category] = i
		bars[i].Name = category
	}

	for _, s := range spec.Series {
		for _, p := range s.Points {
			i, ok := index[p.Category]
			if !ok {
				continue
			}

			bars[i].Values = append(bars[i].Values, segment(s.Name, p.Value))
		}
	}

	for i := range bars {
		bars[i].Values = topUp(bars[i].Values, spec.XMax)
	}

	return bars
}

// groupedBars дает по столбцу на каждую пару (категория, серия) из spec,
// сначала по категориям.
func groupedBars(spec presentation.ChartSpec) []chart.StackedBar {
	var bars []chart.StackedBar

	for _, category := range spec.Categories {
		for _, s := range spec.Series {
			for _, p := range s.Points {
				if p.Category != category {
					continue
				}

				bars = append(bars, chart.StackedBar{
					Name:   category + " / " + s.Name,
					Values: topUp([]chart.Value{segment(s.Name, p.Value)}, spec.XMax),
				})
			}
		}
	}

	return bars
}

func segment(series string, v float64) chart.Value {
	color := drawing.ColorFromHex(colorHex(series))

	return chart.Value{
		Label: series,
		Value: v,
		Style: chart.Style{FillColor: color, StrokeColor: color},
	}
}

func topUp(values []chart.Value, xMax float64) []chart.Value {
	var total float64
	for _, v := range values {
		total += v.Value
	}

	if rest := xMax - total; rest > 0 {
		values = append(values, chart.Value{
			Value: rest,
			Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		})
	}

	return values
}
