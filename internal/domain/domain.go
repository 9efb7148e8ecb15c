package domain

const (
	StatusAberto      = "aberto"
	StatusSolucionado = "solucionado"
)

// Cargos lists the roles accepted when the cargo enumeration is enforced.
var Cargos = []string{"delegado", "investigador", "escrivao", "perito", "agente"}

// CasoStatuses lists every status a caso may hold.
var CasoStatuses = []string{StatusAberto, StatusSolucionado}

type Agente struct {
	ID                 string `json:"id" format:"uuid"`
	Nome               string `json:"nome"`
	DataDeIncorporacao string `json:"dataDeIncorporacao" format:"date"`
	Cargo              string `json:"cargo"`
}

type Caso struct {
	ID        string `json:"id" format:"uuid"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Status    string `json:"status" enum:"aberto,solucionado"`
	AgenteID  string `json:"agente_id" format:"uuid"`
}

// AgentePatch carries the fields touched by a partial update. Nil means untouched.
type AgentePatch struct {
	ID                 *string
	Nome               *string
	DataDeIncorporacao *string
	Cargo              *string
}

// CasoPatch carries the fields touched by a partial update. Nil means untouched.
type CasoPatch struct {
	ID        *string
	Titulo    *string
	Descricao *string
	Status    *string
	AgenteID  *string
}

// AgenteFilter narrows agente listings. Sort is "", "dataDeIncorporacao" or "-dataDeIncorporacao".
type AgenteFilter struct {
	Cargo string
	Sort  string
}

type CasoFilter struct {
	AgenteID string
	Status   string
	Q        string
}

type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts" format:"date-time"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind" enum:"agente,caso"`
	EntityID   string `json:"entity_id,omitempty"`
	Payload    string `json:"payload_json"`
}
