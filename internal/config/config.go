// Package config holds the analysis configuration shared by every pipeline
// stage: column names, keyword lexicons, and model hyperparameters. The
// bundle is passed by value into each stage and never mutated after load.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration bundle for one analysis run.
type Config struct {
	Currency string `toml:"currency"`

	DateColumn        string `toml:"date_column"`
	DescriptionColumn string `toml:"description_column"`
	AmountColumn      string `toml:"amount_column"`

	IncomeKeywords       []string `toml:"income_keywords"`
	RefundKeywords       []string `toml:"refund_keywords"`
	SubscriptionKeywords []string `toml:"subscription_keywords"`

	// Categories is an ordered rule list: the first category whose keyword
	// set matches the description wins. Order is significant.
	Categories []CategoryRule `toml:"categories"`

	Anomaly  AnomalyConfig  `toml:"anomaly"`
	Quality  QualityConfig  `toml:"quality"`
	Forecast ForecastConfig `toml:"forecast"`
}

// CategoryRule maps a category label to its keyword set.
type CategoryRule struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
}

// AnomalyConfig holds isolation-forest hyperparameters.
type AnomalyConfig struct {
	Contamination  float64  `toml:"contamination"`
	Seed           int64    `toml:"seed"`
	Trees          int      `toml:"trees"`
	SampleSize     int      `toml:"sample_size"`
	FeatureColumns []string `toml:"feature_columns"`
}

// QualityConfig holds settings for the monthly data-quality assessor.
type QualityConfig struct {
	Nu             float64 `toml:"nu"`
	Gamma          string  `toml:"gamma"` // "scale" or "auto"
	ScoreThreshold float64 `toml:"score_threshold"`
	MinMonths      int     `toml:"min_months"`
}

// ForecastConfig holds settings for the expense forecaster.
type ForecastConfig struct {
	HorizonMonths   int  `toml:"horizon_months"`
	SeasonalPeriods int  `toml:"seasonal_periods"`
	DampedTrend     bool `toml:"damped_trend"`
}

// OtherCategory is the fallback label for descriptions no rule matches.
const OtherCategory = "Other"

// UnknownDescription replaces empty descriptions before any keyword matching.
const UnknownDescription = "Unknown"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Currency:          "BRL",
		DateColumn:        "date",
		DescriptionColumn: "title",
		AmountColumn:      "amount",
		IncomeKeywords: []string{
			"pagamento recebido", "recebido", "transferencia", "salary",
			"deposito", "estorno",
		},
		RefundKeywords: []string{
			"estorno", "chargeback", "reversal", "refund",
		},
		SubscriptionKeywords: []string{
			"spotify", "netflix", "microsoft", "apple", "amazon", "google",
			"openai", "nuv",
		},
		Categories: defaultCategories(),
		Anomaly: AnomalyConfig{
			Contamination: 0.05,
			Seed:          42,
			Trees:         100,
			SampleSize:    256,
			FeatureColumns: []string{
				"amount", "abs_amount", "rolling_7d_spend",
				"rolling_30d_spend", "day_of_week", "is_weekend", "hour",
			},
		},
		Quality: QualityConfig{
			Nu:             0.05,
			Gamma:          "scale",
			ScoreThreshold: -0.05,
			MinMonths:      4,
		},
		Forecast: ForecastConfig{
			HorizonMonths:   6,
			SeasonalPeriods: 12,
			DampedTrend:     true,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// CategoryFor returns the first category whose keyword set matches the
// description, or OtherCategory when none does.
func (c Config) CategoryFor(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range c.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return OtherCategory
}

// MatchesAny reports whether any keyword is a substring of the lowercased
// description.
func MatchesAny(description string, keywords []string) bool {
	lower := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func defaultCategories() []CategoryRule {
	return []CategoryRule{
		{Label: "Food", Keywords: []string{
			"yakide", "dominos", "subway", "pizz", "pizzaria", "rest",
			"restaurante", "ifood", "ubereats", "rapi", "padaria", "cafe",
			"cafeteria", "bistro", "lanch", "lanche", "mercado", "quiosque",
			"sushi", "burger", "fast food", "zona sul", "mate",
		}},
		{Label: "Groceries", Keywords: []string{
			"supermercado", "hiper", "mercadopago", "mercado livre",
			"bahamas", "pao de acucar", "atacadao", "assai", "carrefour",
			"guanabara", "ultra", "casa do biscoito",
		}},
		{Label: "Transportation", Keywords: []string{
			"uber", "99", "cabify", "nupay", "clickbus", "rodoviaria",
			"passagem", "passagens", "bilhete", "metro", "bus", "trip",
			"pedagio", "estacionamento", "locadora",
		}},
		{Label: "Fuel", Keywords: []string{
			"posto", "ipiranga", "shell", "petrobras", "combust", "gasolina",
			"diesel", "alcool",
		}},
		{Label: "Housing", Keywords: []string{
			"aluguel", "condominio", "imobili", "energia", "luz", "agua",
			"gas", "materiais", "construcao", "manutencao", "ferramenta",
		}},
		{Label: "Telecom", Keywords: []string{
			"internet", "banda larga", "fibra", "telefon", "celular",
			"claro", "vivo", "tim", "oi", "net", "sky",
		}},
		{Label: "Health", Keywords: []string{
			"farm", "drog", "clin", "med", "hospital", "laboratorio",
			"odonto", "dental",
		}},
		{Label: "Education", Keywords: []string{
			"curso", "livro", "escola", "faculdade", "univers", "idioma",
			"catarse",
		}},
		{Label: "Services", Keywords: []string{
			"cassiano", "vivian", "serv", "consult", "pagamento", "okto",
			"assessoria", "assistencia", "contab", "agencia", "manutencao",
		}},
		{Label: "Entertainment", Keywords: []string{
			"cinema", "teatro", "show", "evento", "ingresso", "netflix",
			"spotify", "prime video", "disney", "hbo", "game", "playstation",
			"xbox", "steam", "cinemark",
		}},
		{Label: "Leisure", Keywords: []string{
			"jfk", "taverna", "pub", "bar", "parque", "club", "piscina",
			"spa", "esporte",
		}},
		{Label: "Shopping", Keywords: []string{
			"shopping", "loja", "varejo", "magalu", "americanas",
			"casas bahia", "shopee", "shein", "centauro", "fast shop",
			"decathlon", "riachuelo",
		}},
		{Label: "Beauty", Keywords: []string{
			"salon", "beleza", "cosmet", "perfum", "sephora", "barbearia",
			"estetica",
		}},
		{Label: "Pets", Keywords: []string{
			"petz", "petlove", "pet shop", "agropecu", "zoon",
		}},
		{Label: "Transfers", Keywords: []string{
			"pix", "transferencia", "transfer", "ted", "doc", "envio",
			"enviar", "cash out", "picpay", "wise", "remessa",
		}},
		{Label: "Investments", Keywords: []string{
			"invest", "tesouro", "bolsa", "acoes", "fundos", "cdb", "lci",
			"lca", "xp", "rico", "modal", "corretora",
		}},
		{Label: "Technology", Keywords: []string{
			"microsoft", "google", "apple", "amazon digital", "openai",
			"hardware", "software", "eletron", "gad",
		}},
		{Label: "Fees", Keywords: []string{
			"juros", "encerramento", "imposto", "iof", "tarifa", "taxa",
			"anuidade", "banco",
		}},
		{Label: "Taxes", Keywords: []string{
			"iptu", "ipva", "darf", "licenc",
		}},
		{Label: "Insurance", Keywords: []string{
			"seguro", "porto seguro", "bradesco seguros", "sulamerica",
			"mapfre",
		}},
		{Label: "Travel", Keywords: []string{
			"airbnb", "hotel", "ticket", "passagens", "viagem", "booking",
			"decolar", "maxmilhas",
		}},
	}
}
