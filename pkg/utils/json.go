package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON formata o valor com indentação; usado na saída da CLI
func PrettyJSON(in any) (string, error) {
	buffer, err := jsonAPI.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	return string(buffer), nil
}
