// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Selection Запрос на смену выбора. Пустое поле означает "без изменений".
// Допустимые значения (названия, slug, без учета регистра) проверяет домен.
type Selection struct {
	Borough string `json:"borough,omitempty" validate:"omitempty,max=64"`
	Mode    string `json:"mode,omitempty" validate:"omitempty,max=64"`
}

// ChartView Текущее состояние области графика
type ChartView struct {
	Borough  string         `json:"borough"`
	Mode     string         `json:"mode"`
	Seq      uint64         `json:"seq"`
	Chart    *Chart         `json:"chart,omitempty"`
	VegaLite map[string]any `json:"vegaLite,omitempty"`
	NoData   *Error         `json:"noData,omitempty"`
}

type Chart struct {
	Kind       string   `json:"kind"`
	Title      string   `json:"title"`
	XField     string   `json:"xField"`
	YField     string   `json:"yField"`
	ColorField string   `json:"colorField"`
	Grouped    bool     `json:"grouped"`
	XAxisSide  string   `json:"xAxisSide"`
	XMax       float64  `json:"xMax"`
	Height     int      `json:"height"`
	Width      int      `json:"width"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Point struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Options Допустимые значения переключателей
type Options struct {
	Boroughs       []string `json:"boroughs"`
	Modes          []string `json:"modes"`
	DefaultBorough string   `json:"defaultBorough"`
	DefaultMode    string   `json:"defaultMode"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
