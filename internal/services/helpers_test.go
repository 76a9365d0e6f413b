package services

import (
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	assetRepo  repository.AssetRepository
	userRepo   repository.UserRepository
	logRepo    repository.LogRepository
	configRepo repository.ConfigRepository

	audit  AuditService
	config ConfigService
	assets AssetService
	users  UserService
	auth   *helper.Auth
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	env := &testEnv{
		assetRepo:  repository.NewAssetRepository(db),
		userRepo:   repository.NewUserRepository(db),
		logRepo:    repository.NewLogRepository(db),
		configRepo: repository.NewConfigRepository(db),
		auth:       helper.SetupAuth(),
	}
	env.audit = NewAuditService(env.logRepo, nil)
	env.config = NewConfigService(env.configRepo, env.audit)
	env.assets = NewAssetService(env.assetRepo, env.config, env.audit)
	env.users = NewUserService(env.userRepo, env.auth, env.audit)

	require.NoError(t, env.configRepo.Save(domain.DefaultConfig()))
	return env
}

func testAdmin() domain.User {
	return domain.DefaultAdmin("admin@edc.cm", "admin12345")
}

func (e *testEnv) lastLog(t *testing.T) domain.Log {
	t.Helper()
	logs, err := e.logRepo.LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	return logs[len(logs)-1]
}
