// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func stringAddr(s string) *string {
	return &s
}

func TestUserPatchApply(t *testing.T) {
	u := model.User{ID: 3, Name: "Ann"}
	assert.False(t, model.UserPatch{}.Apply(&u), "empty patch")
	assert.Equal(t, model.User{ID: 3, Name: "Ann"}, u)

	p := model.UserPatch{Name: stringAddr("Anna")}
	assert.True(t, p.Apply(&u), "name patch")
	assert.Equal(t, model.User{ID: 3, Name: "Anna"}, u)
	assert.False(t, p.Apply(&u), "applying the same patch again")
}

func TestUserReplace(t *testing.T) {
	u := model.User{ID: 7, Name: "Ann"}
	u.Replace(model.User{ID: 99, Name: "Bob"})
	assert.Equal(t, model.User{ID: 7, Name: "Bob"}, u)
}

func TestDirectoryPatchKeepsPhoneNumber(t *testing.T) {
	d := model.Directory{ID: 1, Label: "home", PhoneNumber: 5550100}
	p := model.DirectoryPatch{Label: stringAddr("office")}
	assert.True(t, p.Apply(&d))
	assert.Equal(t, model.Directory{
		ID: 1, Label: "office", PhoneNumber: 5550100,
	}, d)
}

func TestDirectoryReplaceKeepsPhoneNumber(t *testing.T) {
	d := model.Directory{ID: 2, Label: "home", PhoneNumber: 5550100}
	d.Replace(model.Directory{Label: "mobile", PhoneNumber: 5550199})
	assert.Equal(t, model.Directory{
		ID: 2, Label: "mobile", PhoneNumber: 5550100,
	}, d)
}
