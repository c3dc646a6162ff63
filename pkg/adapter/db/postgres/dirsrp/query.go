// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dirsrp

import (
	"context"
	"fmt"

	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gDirectory maps a model.Directory to a row of the directories table.
// The phone_number column is written only by the Create query.
type gDirectory struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Label       string `gorm:"not null"`
	PhoneNumber int64  `gorm:"column:phone_number;not null"`
}

func (gd *gDirectory) TableName() string {
	return "directories"
}

func (gd *gDirectory) Model() *model.Directory {
	return &model.Directory{
		ID:          gd.ID,
		Label:       gd.Label,
		PhoneNumber: gd.PhoneNumber,
	}
}

func expectOne(n int) error {
	if n == 1 {
		return nil
	}
	return cerr.NotFound(
		fmt.Errorf("expected one row, but got %d", n),
	)
}

func All[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Directory, error) {
	var gds []gDirectory
	err := q.GORM(ctx).Order("id").Find(&gds).Error
	if err != nil {
		return nil, postgres.Translate("select directories", err)
	}
	ds := make([]model.Directory, 0, len(gds))
	for i := range gds {
		ds = append(ds, *gds[i].Model())
	}
	return ds, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, d *model.Directory) (*model.Directory, error) {
	gd := &gDirectory{Label: d.Label, PhoneNumber: d.PhoneNumber}
	if err := q.GORM(ctx).Create(gd).Error; err != nil {
		return nil, postgres.Translate("insert directory", err)
	}
	return gd.Model(), nil
}

func Fetch[Q postgres.Queryer](ctx context.Context, q Q, id uint64) (*model.Directory, error) {
	var gds []gDirectory
	err := q.GORM(ctx).Where("id = ?", id).Limit(1).Find(&gds).Error
	if err != nil {
		return nil, postgres.Translate("select directory", err)
	}
	if err := expectOne(len(gds)); err != nil {
		return nil, err
	}
	return gds[0].Model(), nil
}

// Save updates the label column of the d.ID row. The phone_number
// column is not updated, even if d carries another phone number.
func Save[Q postgres.Queryer](ctx context.Context, q Q, d *model.Directory) (*model.Directory, error) {
	var gds []gDirectory
	err := q.GORM(ctx).Model(&gds).Clauses(clause.Returning{}).Where(
		"id = ?", d.ID,
	).Update("label", d.Label).Error
	if err != nil {
		return nil, postgres.Translate("update directory", err)
	}
	if err := expectOne(len(gds)); err != nil {
		return nil, err
	}
	return gds[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uint64) error {
	res := q.GORM(ctx).Delete(&gDirectory{}, id)
	if err := res.Error; err != nil {
		return postgres.Translate("delete directory", err)
	}
	return expectOne(int(res.RowsAffected))
}

func DeleteAll[Q postgres.Queryer](ctx context.Context, q Q) (int64, error) {
	res := q.GORM(ctx).Session(&gorm.Session{
		AllowGlobalUpdate: true,
	}).Delete(&gDirectory{})
	if err := res.Error; err != nil {
		return 0, postgres.Translate("delete directories", err)
	}
	return res.RowsAffected, nil
}

// Prepare creates the directories table if it does not exist.
func Prepare(ctx context.Context, tx *postgres.Tx) error {
	m := tx.GORM(ctx).Migrator()
	if m.HasTable(&gDirectory{}) {
		return nil
	}
	if err := m.CreateTable(&gDirectory{}); err != nil {
		return postgres.Translate("create directories table", err)
	}
	return nil
}

// Revert drops the directories table if it exists.
func Revert(ctx context.Context, tx *postgres.Tx) error {
	err := tx.GORM(ctx).Migrator().DropTable(&gDirectory{})
	return postgres.Translate("drop directories table", err)
}
