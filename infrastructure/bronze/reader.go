// Package bronze lê os arquivos CSV brutos da camada Bronze
package bronze

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/schema"
	"golang.org/x/text/encoding/charmap"
)

const DefaultSalesPattern = "AdventureWorks_Sales_*.csv"

var (
	ErrNoSalesFiles = errors.New("no sales files found")
	ErrEmptyFile    = errors.New("empty file: no header row found")
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Arquivos de origem com uma única fonte por entidade
var sourceFiles = map[schema.Entity]string{
	schema.Customers:   "AdventureWorks_Customers.csv",
	schema.Products:    "AdventureWorks_Products.csv",
	schema.Territories: "AdventureWorks_Territories.csv",
	schema.Returns:     "AdventureWorks_Returns.csv",
}

type Reader struct {
	dir          string
	salesPattern string
}

func NewReader(dir, salesPattern string) *Reader {
	if salesPattern == "" {
		salesPattern = DefaultSalesPattern
	}
	return &Reader{dir: dir, salesPattern: salesPattern}
}

// Read carrega todas as entidades brutas. Vendas vêm de um arquivo por ano,
// descobertos pelo padrão configurado e lidos em ordem lexicográfica.
func (r *Reader) Read(ctx context.Context) (domain.BronzeInput, error) {
	input := domain.BronzeInput{}

	for _, entity := range []schema.Entity{schema.Customers, schema.Products, schema.Territories, schema.Returns} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := r.readFile(filepath.Join(r.dir, sourceFiles[entity]))
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler entidade %s", entity)
		}
		input.Add(entity, batch)
	}

	salesFiles, err := r.SalesFiles()
	if err != nil {
		return nil, err
	}

	for _, path := range salesFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := r.readFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler entidade %s", schema.Sales)
		}
		input.Add(schema.Sales, batch)
	}

	logrus.WithFields(logrus.Fields{
		"dir":         r.dir,
		"sales_files": len(salesFiles),
		"sales":       input.Len(schema.Sales),
	}).Info("Arquivos Bronze carregados")

	return input, nil
}

// SalesFiles lista os arquivos de vendas que casam com o padrão, ordenados
func (r *Reader) SalesFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, r.salesPattern))
	if err != nil {
		return nil, errors.Wrapf(err, "padrão de arquivos de vendas inválido %q", r.salesPattern)
	}
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrNoSalesFiles, "dir=%s pattern=%s", r.dir, r.salesPattern)
	}

	sort.Strings(matches)
	return matches, nil
}

func (r *Reader) readFile(path string) (domain.RawBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawBatch{}, errors.Wrapf(err, "erro ao abrir %s", path)
	}

	batch, err := Parse(data, filepath.Base(path))
	if err != nil {
		return domain.RawBatch{}, errors.Wrapf(err, "erro ao interpretar %s", path)
	}

	return batch, nil
}

// rowReader é a parte de *csv.Reader usada na leitura das linhas
type rowReader interface {
	Read() ([]string, error)
}

// Parse converte o conteúdo CSV em um lote (cabeçalho -> valor).
// Conteúdo que não é UTF-8 válido é decodificado como Latin-1.
// Linhas com colunas a menos são completadas e as com colunas a mais truncadas.
// Linhas que o leitor CSV rejeita vão para Rejected com o número da linha.
func Parse(data []byte, source string) (domain.RawBatch, error) {
	decoded, err := decode(data)
	if err != nil {
		return domain.RawBatch{}, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return parseRows(reader, source)
}

func parseRows(reader rowReader, source string) (domain.RawBatch, error) {
	batch := domain.RawBatch{Source: source}

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return batch, ErrEmptyFile
		}
		return batch, errors.Wrap(err, "erro ao ler cabeçalho")
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"source": source,
				"line":   line,
			}).Warn("Linha CSV rejeitada")

			batch.Rejected = append(batch.Rejected, domain.RejectedLine{Line: line, Reason: err.Error()})
			continue
		}

		if len(row) != len(headers) {
			logrus.WithFields(logrus.Fields{
				"source":   source,
				"line":     line,
				"columns":  len(row),
				"expected": len(headers),
			}).Warn("Quantidade de colunas divergente")

			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}

		record := make(domain.RawRecord, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		batch.Records = append(batch.Records, record)
	}

	return batch, nil
}

func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar latin-1")
	}
	return decoded, nil
}
