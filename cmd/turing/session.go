package main

import (
	"context"
	"errors"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/configs"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/scripts"
	"github.com/reusee/turing/storages"
	"github.com/reusee/turing/universal"
	"github.com/reusee/turing/vars"
)

var errNoDatabase = errors.New("no database, use -db")

// session holds the catalog and store shared by all actions of one invocation.
type session struct {
	universal *universal.Machine
	store     *storages.Store
	settings  configs.Settings
	logger    logs.Logger
}

var current *session

func getSession(ctx context.Context, scope dscope.Scope) (ret *session, err error) {
	if current != nil {
		return current, nil
	}

	scope.Call(func(
		newUniversal universal.New,
		load scripts.Load,
		open storages.Open,
		loader configs.Loader,
		settings configs.Settings,
		logger logs.Logger,
	) {
		s := &session{
			settings: settings,
			logger:   logger,
		}
		s.settings.MaxSteps = vars.FirstNonZero(*maxSteps, settings.MaxSteps)
		s.settings.Parallel = vars.FirstNonZero(*parallel, settings.Parallel)

		s.universal, err = newUniversal()
		if err != nil {
			return
		}
		s.universal.RecordHistory = settings.RecordHistory()

		defined, e := configs.Machines(loader)
		if e != nil {
			err = e
			return
		}
		for _, path := range *scriptFiles {
			fromScript, e := load(path)
			if e != nil {
				err = e
				return
			}
			defined = append(defined, fromScript...)
		}

		if *dbPath != "" {
			s.store, err = open(*dbPath)
			if err != nil {
				return
			}
			stored, e := s.store.List(ctx)
			if e != nil {
				err = e
				return
			}
			defined = append(defined, stored...)
		}

		for _, m := range defined {
			s.universal.Add(m)
		}
		logger.Debug("session ready",
			"machines", len(s.universal.Machines()),
			"max_steps", s.settings.MaxSteps,
		)
		ret = s
	})
	if err != nil {
		return nil, err
	}
	current = ret
	return ret, nil
}

func (s *session) requireStore() (*storages.Store, error) {
	if s.store == nil {
		return nil, errNoDatabase
	}
	return s.store, nil
}
