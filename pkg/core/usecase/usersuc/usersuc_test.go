// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/momeni/clean-crud/internal/test/fakerp"
	"github.com/momeni/clean-crud/pkg/core/cerr"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/suite"
)

type UsersUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pool  *fakerp.Pool
	Users *usersuc.UseCase
}

func TestUsersUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &UsersUseCaseTestSuite{Ctx: context.Background()})
}

func (s *UsersUseCaseTestSuite) SetupTest() {
	s.Pool = &fakerp.Pool{}
	s.Users = usersuc.New(s.Pool, fakerp.NewUsers())
}

func (s *UsersUseCaseTestSuite) create(name string) *model.User {
	u, err := s.Users.Create(s.Ctx, model.User{Name: name})
	s.Require().NoError(err, "creating %q", name)
	return u
}

func (s *UsersUseCaseTestSuite) TestCreateAssignsUniqueIDs() {
	seen := map[uint64]bool{}
	for _, name := range []string{"Ann", "Bob", "Ann"} {
		u := s.create(name)
		s.Equal(name, u.Name)
		s.False(seen[u.ID], "repeated id %d", u.ID)
		seen[u.ID] = true
	}
	us, err := s.Users.List(s.Ctx)
	s.Require().NoError(err)
	s.Len(us, 3)
}

func (s *UsersUseCaseTestSuite) TestCreateIgnoresGivenID() {
	u, err := s.Users.Create(s.Ctx, model.User{ID: 42, Name: "Ann"})
	s.Require().NoError(err)
	s.Equal(uint64(1), u.ID)
}

func (s *UsersUseCaseTestSuite) TestUpdateThenFetch() {
	u := s.create("Ann")
	name := "X"
	updated, err := s.Users.Update(s.Ctx, u, model.UserPatch{Name: &name})
	s.Require().NoError(err)
	s.Equal(model.User{ID: u.ID, Name: "X"}, *updated)
	s.Equal("Ann", u.Name, "caller's instance must not change")

	fetched, err := s.Users.Fetch(s.Ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(*updated, *fetched)
}

func (s *UsersUseCaseTestSuite) TestEmptyPatchKeepsUser() {
	u := s.create("Ann")
	updated, err := s.Users.Update(s.Ctx, u, model.UserPatch{})
	s.Require().NoError(err)
	s.Equal(*u, *updated)
}

func (s *UsersUseCaseTestSuite) TestReplace() {
	u := s.create("Ann")
	replaced, err := s.Users.Replace(s.Ctx, u, model.User{ID: 9, Name: "Y"})
	s.Require().NoError(err)
	s.Equal(model.User{ID: u.ID, Name: "Y"}, *replaced)
}

func (s *UsersUseCaseTestSuite) TestDeleteThenFetch() {
	u := s.create("Ann")
	s.Require().NoError(s.Users.Delete(s.Ctx, u.ID))
	_, err := s.Users.Fetch(s.Ctx, u.ID)
	s.True(cerr.IsNotFound(err), "expected not found, got %v", err)
	err = s.Users.Delete(s.Ctx, u.ID)
	s.True(cerr.IsNotFound(err), "expected not found, got %v", err)
}

func (s *UsersUseCaseTestSuite) TestSaveOfDeletedUser() {
	u := s.create("Ann")
	s.Require().NoError(s.Users.Delete(s.Ctx, u.ID))
	name := "late"
	_, err := s.Users.Update(s.Ctx, u, model.UserPatch{Name: &name})
	s.True(cerr.IsNotFound(err), "expected not found, got %v", err)
}

func (s *UsersUseCaseTestSuite) TestClear() {
	n, err := s.Users.Clear(s.Ctx)
	s.Require().NoError(err, "clearing an empty table")
	s.Zero(n)
	s.create("Ann")
	s.create("Bob")
	n, err = s.Users.Clear(s.Ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)
	us, err := s.Users.List(s.Ctx)
	s.Require().NoError(err)
	s.Empty(us)
}

func (s *UsersUseCaseTestSuite) TestPoolFailure() {
	s.Pool.Err = errors.New("connection refused")
	_, err := s.Users.List(s.Ctx)
	s.ErrorIs(err, s.Pool.Err)
	s.False(cerr.IsNotFound(err))
}

func (s *UsersUseCaseTestSuite) TestUnchangedPatchSkipsDatabase() {
	u := s.create("Ann")
	s.Pool.Err = errors.New("connection refused")
	same := "Ann"
	for _, p := range []model.UserPatch{{}, {Name: &same}} {
		updated, err := s.Users.Update(s.Ctx, u, p)
		s.Require().NoError(err)
		s.Equal(*u, *updated)
	}
	other := "Bob"
	_, err := s.Users.Update(s.Ctx, u, model.UserPatch{Name: &other})
	s.ErrorIs(err, s.Pool.Err)
}
