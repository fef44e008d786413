package data

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritasproject/veritas/pkg/audit"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))
	db, err := GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testScore(project string, overall int) *audit.TrustScore {
	on := overall - 4
	return &audit.TrustScore{
		Project:         project,
		Address:         "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
		OverallScore:    overall,
		OnChainScore:    &on,
		ConfidenceLevel: 0.85,
		PositiveFactors: []string{"Verified contract"},
		RiskFactors:     []string{},
		Recommendation:  audit.RecommendationFor(overall),
		Timestamp:       time.Now().UTC(),
	}
}

func TestSaveAndQueryAudits(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SaveAudit(db, testScore("Uniswap", 84)))
	require.NoError(t, SaveAudit(db, testScore("Chainlink", 72)))

	list, err := QueryAudits(db, nil, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	for _, item := range list {
		require.NotNil(t, item.Report, "report round-trips through storage")
		assert.Equal(t, item.Project, item.Report.Project)
		assert.Equal(t, item.OverallScore, item.Report.OverallScore)
		assert.NotEmpty(t, item.CreatedAt)
	}
}

func TestQueryAudits_LikeFilter(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SaveAudit(db, testScore("Uniswap", 84)))
	require.NoError(t, SaveAudit(db, testScore("Chainlink", 72)))

	like := "swap"
	list, err := QueryAudits(db, &like, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Uniswap", list[0].Project)

	miss := "nosuch"
	list, err = QueryAudits(db, &miss, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQueryAudits_Limit(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, SaveAudit(db, testScore("Project", 50+i)))
	}

	list, err := QueryAudits(db, nil, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSaveAudit_Validation(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, SaveAudit(nil, testScore("Uniswap", 84)))
	assert.Error(t, SaveAudit(db, nil))
}

func TestQueryAudits_Validation(t *testing.T) {
	db := setupTestDB(t)

	_, err := QueryAudits(nil, nil, 10)
	assert.Error(t, err)

	_, err = QueryAudits(db, nil, 0)
	assert.Error(t, err)
}

func TestInit_ExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))

	db, err := GetDB(path)
	require.NoError(t, err)
	require.NoError(t, SaveAudit(db, testScore("Uniswap", 84)))
	db.Close()

	// Second Init must not recreate the schema or drop rows.
	require.NoError(t, Init(path))
	db, err = GetDB(path)
	require.NoError(t, err)
	defer db.Close()

	list, err := QueryAudits(db, nil, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
