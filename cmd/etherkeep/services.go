package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/etherkeep/etherkeep-daemon/internal/config"
	"github.com/etherkeep/etherkeep-daemon/internal/core/application"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/internal/infrastructure/biometric"
	"github.com/etherkeep/etherkeep-daemon/internal/infrastructure/ethereum"
	dbbadger "github.com/etherkeep/etherkeep-daemon/internal/infrastructure/storage/db/badger"
	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
	boltsecurestore "github.com/etherkeep/etherkeep-daemon/pkg/securestore/bolt"
)

type services struct {
	repoManager ports.RepoManager
	secureStore securestore.SecureStorage
	session     *application.Session
	chainClient ports.ChainClient

	wallet   application.WalletService
	unlocker application.UnlockerService
	account  application.AccountService
}

// withServices opens the storages and wires the application services for the
// duration of a single command, closing everything on the way out.
func withServices(fn func(ctx context.Context, svc *services) error) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := dbbadger.NewRepoManager(config.GetDbDir(), nil)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	secureStore, err := boltsecurestore.NewSecureStorage(
		config.GetSecureStoreDir(), config.SecureStoreFilename,
	)
	if err != nil {
		return err
	}
	defer secureStore.Close()

	chainClient, err := ethereum.NewChainClient(
		config.GetString(config.EthereumRPCURLKey),
	)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	session := application.NewSession()
	biometricAuth := biometric.NewUnavailableAuthenticator()

	svc := &services{
		repoManager: repoManager,
		secureStore: secureStore,
		session:     session,
		chainClient: chainClient,
		wallet: application.NewWalletService(
			repoManager, secureStore, session, chainClient,
		),
		unlocker: application.NewUnlockerService(
			repoManager, secureStore, session, biometricAuth, chainClient,
		),
		account: application.NewAccountService(
			repoManager, secureStore, session, chainClient,
		),
	}

	ctx, cancel := context.WithTimeout(
		context.Background(), config.GetRPCTimeout(),
	)
	defer cancel()

	return fn(ctx, svc)
}
