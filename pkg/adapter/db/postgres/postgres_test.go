// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/clean-crud/internal/test/dbcontainer"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres/dirsrp"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/clean-crud/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/clean-crud/pkg/adapter/hash/scram"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationRepoTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pg    *sqltestutil.PostgresContainer
	Pool  *postgres.Pool
	Users *usersrp.Repo
	Dirs  *dirsrp.Repo
}

func TestIntegrationRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationRepoTestSuite{
		Ctx:   ctx,
		Pg:    pg,
		Pool:  pool,
		Users: usersrp.New(),
		Dirs:  dirsrp.New(),
	})
}

func (irts *IntegrationRepoTestSuite) tx(h repo.TxHandler) error {
	return irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, h)
		},
	)
}

func (irts *IntegrationRepoTestSuite) SetupTest() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		if err := irts.Users.Tx(tx).Prepare(ctx); err != nil {
			return err
		}
		return irts.Dirs.Tx(tx).Prepare(ctx)
	})
	irts.Require().NoError(err, "failed to create tables")
}

func (irts *IntegrationRepoTestSuite) TearDownTest() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		if err := irts.Dirs.Tx(tx).Revert(ctx); err != nil {
			return err
		}
		return irts.Users.Tx(tx).Revert(ctx)
	})
	irts.Require().NoError(err, "failed to drop tables")
}

func (irts *IntegrationRepoTestSuite) TestPrepareIsIdempotent() {
	irts.SetupTest()
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		if err := irts.Dirs.Tx(tx).Revert(ctx); err != nil {
			return err
		}
		return irts.Dirs.Tx(tx).Revert(ctx)
	})
	irts.NoError(err, "dropping a missing table must succeed")
	err = irts.Pool.Conn(irts.Ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := irts.Dirs.Conn(c).All(ctx)
		return err
	})
	irts.Error(err, "directories table must be dropped")
	irts.SetupTest()
}

func (irts *IntegrationRepoTestSuite) TestUsersCRUD() {
	err := irts.Pool.Conn(irts.Ctx, func(ctx context.Context, c repo.Conn) error {
		q := irts.Users.Conn(c)
		u, err := q.Create(ctx, &model.User{Name: "Ann"})
		irts.Require().NoError(err)
		irts.Equal(model.User{ID: 1, Name: "Ann"}, *u)
		u2, err := q.Create(ctx, &model.User{Name: "Bo"})
		irts.Require().NoError(err)
		irts.Equal(uint64(2), u2.ID)

		u.Name = "Cy"
		saved, err := q.Save(ctx, u)
		irts.Require().NoError(err)
		irts.Equal(model.User{ID: 1, Name: "Cy"}, *saved)

		fetched, err := q.Fetch(ctx, 1)
		irts.Require().NoError(err)
		irts.Equal(*saved, *fetched)

		all, err := q.All(ctx)
		irts.Require().NoError(err)
		irts.Equal([]model.User{*saved, *u2}, all)

		irts.NoError(q.Delete(ctx, 1))
		irts.True(cerr.IsNotFound(q.Delete(ctx, 1)))
		_, err = q.Fetch(ctx, 1)
		irts.True(cerr.IsNotFound(err))
		_, err = q.Save(ctx, u)
		irts.True(cerr.IsNotFound(err))

		n, err := q.DeleteAll(ctx)
		irts.Require().NoError(err)
		irts.Equal(int64(1), n)
		n, err = q.DeleteAll(ctx)
		irts.Require().NoError(err)
		irts.Zero(n)
		return nil
	})
	irts.NoError(err)
}

func (irts *IntegrationRepoTestSuite) TestDirectorySaveKeepsPhoneNumber() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := irts.Dirs.Tx(tx)
		d, err := q.Create(ctx, &model.Directory{
			Label: "home", PhoneNumber: 5551234,
		})
		irts.Require().NoError(err)
		irts.Equal(uint64(1), d.ID)
		saved, err := q.Save(ctx, &model.Directory{
			ID: d.ID, Label: "work", PhoneNumber: 1,
		})
		irts.Require().NoError(err)
		irts.Equal(
			model.Directory{ID: 1, Label: "work", PhoneNumber: 5551234},
			*saved,
		)
		return nil
	})
	irts.NoError(err)
}

func (irts *IntegrationRepoTestSuite) TestSchemaRoles() {
	const suffix = repo.Role("_it")
	schemaRepo := schemarp.New(suffix, scram.SHA256())
	const pass = "n0rmal-pass"
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := schemaRepo.Tx(tx)
		for i := 0; i < 2; i++ {
			if err := q.CreateRoleIfNotExists(ctx, repo.NormalRole); err != nil {
				return err
			}
		}
		if err := q.GrantPrivileges(ctx, "public", repo.NormalRole); err != nil {
			return err
		}
		return q.ChangePasswords(
			ctx, []repo.Role{repo.NormalRole}, []string{pass},
		)
	})
	irts.Require().NoError(err)

	u, err := url.Parse(irts.Pg.ConnectionString())
	irts.Require().NoError(err)
	u.User = url.UserPassword(string(repo.NormalRole+suffix), pass)
	p, err := postgres.NewPool(irts.Ctx, u.String())
	irts.Require().NoError(err, "normal role must login with new password")
	irts.NoError(p.Close())
}
