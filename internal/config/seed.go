package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"departamento/internal/domain"
)

// Seed models the fixtures YAML document.
type Seed struct {
	Agentes []SeedAgente `yaml:"agentes"`
	Casos   []SeedCaso   `yaml:"casos"`
}

type SeedAgente struct {
	ID                 string `yaml:"id"`
	Nome               string `yaml:"nome"`
	DataDeIncorporacao string `yaml:"dataDeIncorporacao"`
	Cargo              string `yaml:"cargo"`
}

type SeedCaso struct {
	ID        string `yaml:"id"`
	Titulo    string `yaml:"titulo"`
	Descricao string `yaml:"descricao"`
	Status    string `yaml:"status"`
	AgenteID  string `yaml:"agente_id"`
}

func (s SeedAgente) Agente() domain.Agente {
	return domain.Agente{ID: s.ID, Nome: s.Nome, DataDeIncorporacao: s.DataDeIncorporacao, Cargo: s.Cargo}
}

func (s SeedCaso) Caso() domain.Caso {
	return domain.Caso{ID: s.ID, Titulo: s.Titulo, Descricao: s.Descricao, Status: s.Status, AgenteID: s.AgenteID}
}

// SeedFromYAML parses fixtures from raw YAML bytes.
func SeedFromYAML(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}
	return &s, nil
}

// LoadSeed reads fixtures from path, or the built-in fixtures when path is empty.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return SeedFromYAML([]byte(defaultSeed))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seed file %s not found", path)
		}
		return nil, err
	}
	return SeedFromYAML(data)
}

const defaultSeed = `agentes:
  - id: 401bccf5-cf9e-489d-8412-446cd169a0f1
    nome: Rommel Carneiro
    dataDeIncorporacao: "1992-10-04"
    cargo: delegado

casos:
  - id: f5fb2ad5-22a8-4cb4-90f2-8733517a0d46
    titulo: Homicídio
    descricao: Disparos foram reportados às 22:33 do dia 10/07/2007 na região do bairro União
    status: aberto
    agente_id: 401bccf5-cf9e-489d-8412-446cd169a0f1
`
