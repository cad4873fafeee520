// Package schema contém o registro das formas canônicas das entidades da camada Silver
package schema

import (
	"errors"
	"fmt"
)

// SemanticType é o tipo semântico de um campo canônico
type SemanticType string

const (
	Integer SemanticType = "integer"
	Decimal SemanticType = "decimal"
	Text    SemanticType = "text"
	Date    SemanticType = "date"
	Boolean SemanticType = "boolean"
)

// Constraint restringe o domínio de campos numéricos
type Constraint int

const (
	NoConstraint Constraint = iota
	NonNegative
	Positive
)

// Entity identifica uma entidade canônica
type Entity string

const (
	Calendar    Entity = "calendar"
	Customers   Entity = "customers"
	Products    Entity = "products"
	Sales       Entity = "sales"
	Returns     Entity = "returns"
	Territories Entity = "territories"
)

var ErrUnknownEntity = errors.New("unknown entity")

// UnknownEntityError é retornado quando o registro é consultado com uma entidade fora do conjunto fechado
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownEntity.Error(), e.Entity)
}

func (e *UnknownEntityError) Unwrap() error {
	return ErrUnknownEntity
}

// Field descreve um campo canônico: nome, tipo semântico e nulabilidade
type Field struct {
	Name       string
	Type       SemanticType
	Nullable   bool
	Aliases    []string // Nomes alternativos aceitos na entrada bruta
	Allowed    []string // Valores enumerados aceitos (apenas texto)
	Constraint Constraint
}

// SourceNames retorna o nome canônico seguido dos aliases, na ordem de busca
func (f Field) SourceNames() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// Definition é a forma ordenada de uma entidade
type Definition struct {
	Entity Entity
	Fields []Field
	// Key lista os campos que compõem a identidade; vazio para entidades sem identidade
	Key []string
}

// FieldNames retorna os nomes dos campos na ordem declarada
func (d Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// Field busca um campo pelo nome canônico
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var definitions = map[Entity]Definition{
	Calendar: {
		Entity: Calendar,
		Key:    []string{"Date"},
		Fields: []Field{
			{Name: "Date", Type: Date},
			{Name: "Year", Type: Integer},
			{Name: "Month", Type: Integer},
			{Name: "Day", Type: Integer},
			{Name: "DayOfWeek", Type: Integer},
			{Name: "DayName", Type: Text},
			{Name: "MonthName", Type: Text},
			{Name: "Quarter", Type: Integer},
		},
	},
	Customers: {
		Entity: Customers,
		Key:    []string{"CustomerKey"},
		Fields: []Field{
			{Name: "CustomerKey", Type: Integer},
			{Name: "Prefix", Type: Text, Nullable: true},
			{Name: "FirstName", Type: Text},
			{Name: "LastName", Type: Text},
			{Name: "BirthDate", Type: Date, Nullable: true},
			{Name: "MaritalStatus", Type: Text, Nullable: true, Allowed: []string{"M", "S"}},
			{Name: "Gender", Type: Text, Nullable: true, Allowed: []string{"M", "F"}},
			{Name: "EmailAddress", Type: Text, Nullable: true},
			{Name: "AnnualIncome", Type: Decimal, Constraint: NonNegative},
			{Name: "TotalChildren", Type: Integer, Constraint: NonNegative},
			{Name: "Education", Type: Text, Nullable: true, Aliases: []string{"EducationLevel"}},
			{Name: "Occupation", Type: Text, Nullable: true},
			{Name: "HomeOwner", Type: Boolean, Nullable: true},
		},
	},
	Products: {
		Entity: Products,
		Key:    []string{"ProductKey"},
		Fields: []Field{
			{Name: "ProductKey", Type: Integer},
			{Name: "ProductSubcategoryKey", Type: Integer, Nullable: true},
			{Name: "ProductSKU", Type: Text, Nullable: true},
			{Name: "ProductName", Type: Text},
			{Name: "ModelName", Type: Text, Nullable: true},
			{Name: "ProductDescription", Type: Text, Nullable: true},
			{Name: "ProductColor", Type: Text, Nullable: true},
			{Name: "ProductSize", Type: Text, Nullable: true},
			{Name: "ProductStyle", Type: Text, Nullable: true},
			{Name: "StandardCost", Type: Decimal, Constraint: NonNegative, Aliases: []string{"ProductCost"}},
			{Name: "ListPrice", Type: Decimal, Constraint: NonNegative, Aliases: []string{"ProductPrice"}},
			{Name: "DealerPrice", Type: Decimal, Nullable: true, Constraint: NonNegative},
		},
	},
	Sales: {
		Entity: Sales,
		Key:    []string{"SalesOrderNumber", "SalesOrderLineNumber"},
		Fields: []Field{
			{Name: "SalesOrderNumber", Type: Text, Aliases: []string{"OrderNumber"}},
			{Name: "SalesOrderLineNumber", Type: Integer, Constraint: Positive, Aliases: []string{"OrderLineItem"}},
			{Name: "OrderDate", Type: Date},
			{Name: "StockDate", Type: Date},
			{Name: "ProductKey", Type: Integer},
			{Name: "CustomerKey", Type: Integer},
			{Name: "TerritoryKey", Type: Integer},
			{Name: "OrderQuantity", Type: Integer, Constraint: Positive},
			// Ausentes nos arquivos de origem: derivados do preço de lista do produto
			{Name: "UnitPrice", Type: Decimal, Nullable: true, Constraint: NonNegative},
			{Name: "SalesAmount", Type: Decimal, Nullable: true, Constraint: NonNegative},
		},
	},
	Returns: {
		Entity: Returns,
		Fields: []Field{
			{Name: "ReturnDate", Type: Date, Aliases: []string{"Date"}},
			{Name: "TerritoryKey", Type: Integer},
			{Name: "ProductKey", Type: Integer},
			{Name: "ReturnQuantity", Type: Integer, Constraint: Positive},
		},
	},
	Territories: {
		Entity: Territories,
		Key:    []string{"TerritoryKey"},
		Fields: []Field{
			{Name: "TerritoryKey", Type: Integer, Aliases: []string{"SalesTerritoryKey"}},
			{Name: "Region", Type: Text},
			{Name: "Country", Type: Text},
			{Name: "Continent", Type: Text, Aliases: []string{"Group"}},
		},
	},
}

// Entities retorna o conjunto fechado de entidades em ordem de dependência
func Entities() []Entity {
	return []Entity{Customers, Products, Territories, Sales, Returns, Calendar}
}

// Lookup retorna a definição ordenada de uma entidade
func Lookup(entity Entity) (Definition, error) {
	def, ok := definitions[entity]
	if !ok {
		return Definition{}, &UnknownEntityError{Entity: string(entity)}
	}

	fields := make([]Field, len(def.Fields))
	copy(fields, def.Fields)
	def.Fields = fields

	return def, nil
}

// MustLookup é usado por código que só trabalha com entidades do conjunto fechado
func MustLookup(entity Entity) Definition {
	def, err := Lookup(entity)
	if err != nil {
		panic(err)
	}
	return def
}

// ParseEntity converte um nome textual em Entity
func ParseEntity(name string) (Entity, error) {
	entity := Entity(name)
	if _, ok := definitions[entity]; !ok {
		return "", &UnknownEntityError{Entity: name}
	}
	return entity, nil
}
