// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the users and directories tables",
	Long: `Drop the users and directories tables (and all of their rows)
in one transaction using the normal role. Database roles and their
passwords are kept, so the init sub-command may recreate the tables.`,
	RunE: dropDB,
	Args: cobra.NoArgs,
}

func dropDB(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = c.NewSchemaUseCase().Drop(cmd.Context()); err != nil {
		return fmt.Errorf("dropping DB tables: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(dropCmd)
}
