package config

import "time"

type Socrata struct {
	BaseURL   string        `env:"SOCRATA_BASE_URL"   envDefault:"https://data.cityofnewyork.us/resource"`
	Dataset   string        `env:"SOCRATA_DATASET"    envDefault:"uvpi-gqnh"`
	RowLimit  int           `env:"SOCRATA_ROW_LIMIT"  envDefault:"2000"`
	Timeout   time.Duration `env:"SOCRATA_TIMEOUT"    envDefault:"60s"`
	AppToken  string        `env:"SOCRATA_APP_TOKEN"  json:"-"`
	UserAgent string        `env:"SOCRATA_USER_AGENT" envDefault:"treehealth"`
}
