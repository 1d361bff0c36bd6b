package model

// User represents a single user record from the users API
type User struct {
	ID       int       `json:"id"`
	Nome     string    `json:"nome"`
	Conta    *Conta    `json:"conta,omitempty"`
	Cartao   *Cartao   `json:"cartao,omitempty"`
	Features []Feature `json:"features,omitempty"`
	News     []News    `json:"news,omitempty"`
}

// Conta is the user's bank account
type Conta struct {
	ID      int     `json:"id,omitempty"`
	Numero  string  `json:"numero"`
	Agencia string  `json:"agencia"`
	Balanco float64 `json:"balanco"`
	Limite  float64 `json:"limite"`
}

// Cartao is the user's card
type Cartao struct {
	ID     int     `json:"id,omitempty"`
	Numero string  `json:"numero"`
	Limite float64 `json:"limite"`
}

// Feature is an app feature entry attached to a user
type Feature struct {
	ID        int    `json:"id,omitempty"`
	Icone     string `json:"icone"`
	Descricao string `json:"descricao"`
}

// News is a personalized news entry on the user's feed.
// The enrichment stage appends one of these per run.
type News struct {
	ID        int    `json:"id"`
	Icone     string `json:"icone"`
	Descricao string `json:"descricao"`
}

// NextNewsID returns the ID the next appended news entry should use
func (u *User) NextNewsID() int {
	next := 1
	for _, n := range u.News {
		if n.ID >= next {
			next = n.ID + 1
		}
	}
	return next
}

// LastNews returns the description of the most recently appended news entry
func (u *User) LastNews() string {
	if len(u.News) == 0 {
		return ""
	}
	return u.News[len(u.News)-1].Descricao
}

// RunSpec is the struct for POST /api/v1/runs. Empty fields fall back
// to the configured defaults.
type RunSpec struct {
	CSVPath    string `json:"csvPath,omitempty"`
	ReportPath string `json:"reportPath,omitempty"`
}
