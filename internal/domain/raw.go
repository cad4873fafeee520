package domain

import "github.com/vfg2006/sales-lakehouse/internal/schema"

// RawRecord é uma linha da camada Bronze: nome do campo -> valor textual bruto
type RawRecord map[string]string

// RejectedLine é uma linha da origem que não pôde ser lida como CSV
type RejectedLine struct {
	Line   int
	Reason string
}

// RawBatch é uma sequência de registros brutos vinda de uma única origem (arquivo, ano)
type RawBatch struct {
	Source   string
	Records  []RawRecord
	Rejected []RejectedLine
}

// BronzeInput agrupa os lotes brutos por entidade, na ordem das origens
type BronzeInput map[schema.Entity][]RawBatch

// Add anexa um lote à entidade preservando a ordem de chegada
func (in BronzeInput) Add(entity schema.Entity, batch RawBatch) {
	in[entity] = append(in[entity], batch)
}

// Len retorna o total de registros brutos de uma entidade somando todos os lotes
func (in BronzeInput) Len(entity schema.Entity) int {
	total := 0
	for _, batch := range in[entity] {
		total += len(batch.Records)
	}
	return total
}
