package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"cashflow-mcp/internal/cashflow"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_DemoPortfolio(t *testing.T) {
	c := Default()
	require.Equal(t, 13, c.Len())

	tech, err := c.Lookup("1")
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions SA", tech.Name)
	assert.Equal(t, "123456789", tech.RegistrationID)
	assert.Equal(t, 1_500_000.0, tech.AnnualRevenue)
	assert.Equal(t, 290_000.0, tech.Metrics.Treasury)
	assert.True(t, tech.HasService("Credit Line"))

	energy, err := c.Lookup(" 2 ")
	require.NoError(t, err)
	assert.False(t, energy.HasService("Credit Line"))

	for _, p := range c.List() {
		assert.Positive(t, p.AnnualRevenue, p.ID)
		assert.NotEmpty(t, p.Services, p.ID)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Default().Lookup("404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEntity))
}

func TestList_ReturnsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Name = "mutated"

	p, err := c.Lookup(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions SA", p.Name)
}

func TestNew_RejectsInvalidIDs(t *testing.T) {
	_, err := New([]cashflow.EntityProfile{{ID: "a", AnnualRevenue: 1}, {ID: "a", AnnualRevenue: 1}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]cashflow.EntityProfile{{Name: "anonymous", AnnualRevenue: 1}})
	assert.ErrorContains(t, err, "no id")
}

func TestNew_RejectsNonPositiveRevenue(t *testing.T) {
	for _, revenue := range []float64{0, -10_000, math.NaN()} {
		_, err := New([]cashflow.EntityProfile{{ID: "z", Name: "Zero", AnnualRevenue: revenue}})
		assert.ErrorContains(t, err, "annual revenue must be positive", "revenue %v", revenue)
	}

	c, err := New([]cashflow.EntityProfile{{ID: "ok", AnnualRevenue: 12_000}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoad_RejectsZeroRevenue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `entities:
  - id: idle
    name: Idle Co
    annual_revenue: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "annual revenue must be positive")
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `entities:
  - id: acme
    name: Acme Corp
    sector: Retail
    annual_revenue: 600000
    services: [Current Account, Credit Line]
    metrics:
      treasury: 45000
  - id: beta
    name: Beta Ltd
    annual_revenue: 120000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	acme, err := c.Lookup("acme")
	require.NoError(t, err)
	assert.Equal(t, 600_000.0, acme.AnnualRevenue)
	assert.Equal(t, 45_000.0, acme.Metrics.Treasury)
	assert.Equal(t, []string{"Current Account", "Credit Line"}, acme.Services)
	assert.Equal(t, 50_000.0, acme.MonthlyRevenue())
}

func TestLoad_EmptyPathUsesBuiltin(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 13, c.Len())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entities": []}`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
