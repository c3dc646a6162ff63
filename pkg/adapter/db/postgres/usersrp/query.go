// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

import (
	"context"
	"fmt"

	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gUser maps a model.User to a row of the users table.
type gUser struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null"`
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:   gu.ID,
		Name: gu.Name,
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

func All[Q postgres.Queryer](ctx context.Context, q Q) ([]model.User, error) {
	var gus []gUser
	err := q.GORM(ctx).Order("id").Find(&gus).Error
	if err != nil {
		return nil, postgres.Translate("select users", err)
	}
	us := make([]model.User, 0, len(gus))
	for i := range gus {
		us = append(us, *gus[i].Model())
	}
	return us, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	gu := &gUser{Name: u.Name}
	if err := q.GORM(ctx).Create(gu).Error; err != nil {
		return nil, postgres.Translate("insert user", err)
	}
	return gu.Model(), nil
}

func Fetch[Q postgres.Queryer](ctx context.Context, q Q, id uint64) (*model.User, error) {
	var gus []gUser
	err := q.GORM(ctx).Where("id = ?", id).Limit(1).Find(&gus).Error
	if err != nil {
		return nil, postgres.Translate("select user", err)
	}
	if err := expectOne(len(gus)); err != nil {
		return nil, err
	}
	return gus[0].Model(), nil
}

// Save updates the mutable columns of the u.ID row with the u fields.
// The updated row is returned as a model.User.
func Save[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	var gus []gUser
	err := q.GORM(ctx).Model(&gus).Clauses(clause.Returning{}).Where(
		"id = ?", u.ID,
	).Update("name", u.Name).Error
	if err != nil {
		return nil, postgres.Translate("update user", err)
	}
	if err := expectOne(len(gus)); err != nil {
		return nil, err
	}
	return gus[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uint64) error {
	res := q.GORM(ctx).Delete(&gUser{}, id)
	if err := res.Error; err != nil {
		return postgres.Translate("delete user", err)
	}
	return expectOne(int(res.RowsAffected))
}

func DeleteAll[Q postgres.Queryer](ctx context.Context, q Q) (int64, error) {
	res := q.GORM(ctx).Session(&gorm.Session{
		AllowGlobalUpdate: true,
	}).Delete(&gUser{})
	if err := res.Error; err != nil {
		return 0, postgres.Translate("delete users", err)
	}
	return res.RowsAffected, nil
}

// Prepare creates the users table if it does not exist.
func Prepare(ctx context.Context, tx *postgres.Tx) error {
	m := tx.GORM(ctx).Migrator()
	if m.HasTable(&gUser{}) {
		return nil
	}
	if err := m.CreateTable(&gUser{}); err != nil {
		return postgres.Translate("create users table", err)
	}
	return nil
}

// Revert drops the users table if it exists.
func Revert(ctx context.Context, tx *postgres.Tx) error {
	err := tx.GORM(ctx).Migrator().DropTable(&gUser{})
	return postgres.Translate("drop users table", err)
}
