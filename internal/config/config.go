package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// EthereumRPCURLKey is the url of the Ethereum JSON-RPC endpoint used to
	// fetch balances and chain info
	EthereumRPCURLKey = "ETHEREUM_RPC_URL"
	// RPCTimeoutKey is the timeout in seconds applied to every chain RPC call
	RPCTimeoutKey = "RPC_TIMEOUT"

	// DbLocation is the folder inside the datadir containing the account
	// registry and the vault record
	DbLocation = "db"
	// SecureStoreLocation is the folder inside the datadir containing the
	// encrypted secret store
	SecureStoreLocation = "securestore"
	// SecureStoreFilename is the name of the secret store database file
	SecureStoreFilename = "secrets.db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("etherkeep", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ETHERKEEP")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(EthereumRPCURLKey, "https://cloudflare-eth.com")
	vip.SetDefault(RPCTimeoutKey, 30)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory holding the account registry db
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetSecureStoreDir returns the directory holding the secret store
func GetSecureStoreDir() string {
	return filepath.Join(GetDatadir(), SecureStoreLocation)
}

// GetRPCTimeout returns the chain RPC timeout as a duration
func GetRPCTimeout() time.Duration {
	return time.Duration(GetInt(RPCTimeoutKey)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if len(GetString(EthereumRPCURLKey)) <= 0 {
		return fmt.Errorf("missing ethereum rpc url")
	}

	if GetInt(RPCTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", RPCTimeoutKey)
	}

	return nil
}

func initDatadir() error {
	if err := makeDirectoryIfNotExists(GetDbDir()); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(GetSecureStoreDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
