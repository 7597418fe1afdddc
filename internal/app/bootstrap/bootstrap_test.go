package bootstrap

import (
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestValidateConfig_RejectsBadMongoURI(t *testing.T) {
	cfg := AppConfig{MongoURI: "not-a-mongo-uri"}
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected error for invalid mongo URI")
	}
}

func TestValidateConfig_FeedRequiresPollAttempts(t *testing.T) {
	cfg := AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		FeedBaseURL:      "https://feed.example.org",
		FeedPollAttempts: 0,
	}
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected error when feed sync is enabled without poll attempts")
	}

	cfg.FeedPollAttempts = 10
	if err := ValidateConfig(nil, cfg, testLogger()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{FieldHubMongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}
}
