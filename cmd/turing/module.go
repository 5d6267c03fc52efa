package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/turing/arithmetics"
	"github.com/reusee/turing/programs"
	"github.com/reusee/turing/scripts"
	"github.com/reusee/turing/storages"
	"github.com/reusee/turing/universal"
)

type Module struct {
	dscope.Module
	Universal   universal.Module
	Arithmetics arithmetics.Module
	Programs    programs.Module
	Scripts     scripts.Module
	Storages    storages.Module
}
