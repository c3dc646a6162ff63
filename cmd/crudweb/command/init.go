// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize database roles and tables",
	Long: `Initialize database roles and tables. The database connection
information are read from the config file. The admin role password must
be available in the .pgpass file of the pass-dir directory.

The normal role is created (if missing) and granted privileges on the
public schema. Then passwords of the admin and normal roles are renewed
and recorded in the .pgpass file. At last, the users and directories
tables are created by the normal role (if missing) in one transaction.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = c.NewSchemaUseCase().Init(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initCmd)
}
