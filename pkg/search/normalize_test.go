package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stock-engine/pkg/search"
)

func TestNormalize_QuitaTildesYMinusculas(t *testing.T) {
	assert.Equal(t, "cafe", search.Normalize("Café"))
	assert.Equal(t, "azucar morena", search.Normalize("AZÚCAR Morena"))
	assert.Equal(t, "nino", search.Normalize("Niño"))
}

func TestMatches_InsensibleATildes(t *testing.T) {
	assert.True(t, search.Matches("Café Colombiano 500g", "cafe"))
	assert.True(t, search.Matches("cafe colombiano", "CAFÉ"))
	assert.False(t, search.Matches("Té verde", "cafe"))
}

func TestMatches_NeedleVacioCoincideConTodo(t *testing.T) {
	assert.True(t, search.Matches("cualquier cosa", ""))
	assert.True(t, search.Matches("", ""))
}
