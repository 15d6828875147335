package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tensord/config"
)

func GetHomeDir(cmd *cobra.Command) string {
	homeDirUnexp, err := cmd.Flags().GetString(FlagHome)
	if err != nil {
		panic(err)
	}
	return config.ExpandHomePath(homeDirUnexp)
}

func InitHomeDir(cmd *cobra.Command) (string, error) {
	homeDir := GetHomeDir(cmd)
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errors.New("home directory is already initialized")
	}
	if err := config.InitHomeDir(homeDir); err != nil {
		return "", err
	}
	return homeDir, nil
}

// GetAddr returns the daemon address flag value.
func GetAddr(cmd *cobra.Command) string {
	addr, err := cmd.Flags().GetString(FlagAddr)
	if err != nil {
		panic(err)
	}
	return addr
}
