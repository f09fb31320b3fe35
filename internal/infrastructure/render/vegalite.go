// Package render превращает описание графика в то, что можно показать в
// браузере или открыть как картинку.
package render

import (
	"slices"

	"github.com/samber/lo"

	"treehealth/internal/domain/service/presentation"
)

const (
	vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"
	orderField     = "order"
)

// VegaLite строит документ Vega-Lite v5 по spec. Данные встроены в документ,
// второй запрос странице не нужен.
func VegaLite(spec presentation.ChartSpec) map[string]any {
	names := seriesNames(spec)

	values := make([]map[string]any, 0)

	for i, s := range spec.Series {
		for _, p := range s.Points {
			values = append(values, map[string]any{
				spec.YField:     p.Category,
				spec.ColorField: s.Name,
				spec.XField:     p.Value,
				orderField:      i,
			})
		}
	}

	x := map[string]any{
		"field": spec.XField,
		"type":  "quantitative",
		"axis":  map[string]any{"orient": spec.XAxisSide},
		"scale": map[string]any{"domain": []float64{0, spec.XMax}},
	}

	encoding := map[string]any{
		"x": x,
		"y": map[string]any{
			"field": spec.YField,
			"type":  "nominal",
			"sort":  slices.Clone(spec.Categories),
		},
		"color": map[string]any{
			"field": spec.ColorField,
			"type":  "nominal",
			"scale": map[string]any{"domain": names, "range": seriesColors(spec)},
		},
		"tooltip": []map[string]any{
			{"field": spec.YField, "type": "nominal"},
			{"field": spec.ColorField, "type": "nominal"},
			{"field": spec.XField, "type": "quantitative", "format": tooltipFormat(spec)},
		},
	}

	if spec.Grouped {
		x["stack"] = nil
		encoding["yOffset"] = map[string]any{
			"field": spec.ColorField,
			"sort":  names,
		}
	} else {
		x["stack"] = "zero"
		encoding["order"] = map[string]any{"field": orderField, "type": "ordinal"}
	}

	return map[string]any{
		"$schema":  vegaLiteSchema,
		"title":    spec.Title,
		"width":    spec.Size.Width,
		"height":   spec.Size.Height,
		"data":     map[string]any{"values": values},
		"mark":     map[string]any{"type": "bar"},
		"encoding": encoding,
	}
}

func seriesNames(spec presentation.ChartSpec) []string {
	return lo.Map(spec.Series, func(s presentation.Series, _ int) string {
		return s.Name
	})
}

func seriesColors(spec presentation.ChartSpec) []string {
	return lo.Map(spec.Series, func(s presentation.Series, _ int) string {
		return "#" + colorHex(s.Name)
	})
}

func tooltipFormat(spec presentation.ChartSpec) string {
	if spec.Grouped {
		return ".1f"
	}

	return ".1%"
}
