package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	runIDLength = 12
)

// GenerateRunID gera o identificador de uma execução da pipeline
func GenerateRunID() (string, error) {
	return gonanoid.Generate(characters, runIDLength)
}
