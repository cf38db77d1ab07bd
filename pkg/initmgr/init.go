//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

// Package initmgr runs registered initializers in weight order and
// finalizes the initialized ones in reverse.
package initmgr

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/golang/glog"

	"pitchmd/pkg/logging"
)

var (
	mu           sync.Mutex
	initializers initEntriesT
)

type entryT struct {
	initializer IInitializer
	weight      int
	args        []interface{}
	initialized bool
	finalized   bool
}

type initEntriesT []*entryT

type IInitializer interface {
	Name() string
	Initialize(args ...interface{}) error
	Finalize()
}

func (rs initEntriesT) Len() int {
	return len(rs)
}

func (rs initEntriesT) Less(i, j int) bool {
	return rs[i].weight < rs[j].weight
}

func (rs initEntriesT) Swap(i, j int) {
	rs[i], rs[j] = rs[j], rs[i]
}

// Init initializes every registered entry not initialized yet. On the first
// failure the entries initialized so far are finalized in reverse and the
// error is returned.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	sort.Stable(initializers)

	for i, e := range initializers {
		if e.initialized {
			continue
		}
		name := e.initializer.Name()
		if err := e.initializer.Initialize(e.args...); err != nil {
			glog.Errorf("initmgr: initialize %s failed: %s", name, err)
			finalizeBackwardsFrom(i - 1)
			return fmt.Errorf("initialize %s: %w", name, err)
		}
		e.initialized = true
		if glog.V(logging.Debug) {
			glog.Infof("initmgr: initialized %s", name)
		}
	}
	return nil
}

func finalizeBackwardsFrom(i int) {
	for ; i >= 0; i-- {
		e := initializers[i]
		if !e.initialized || e.finalized {
			continue
		}
		if glog.V(logging.Debug) {
			glog.Infof("initmgr: finalize %s", e.initializer.Name())
		}
		e.initializer.Finalize()
		e.finalized = true
	}
}

// Finalize finalizes every initialized entry once, last initialized first.
func Finalize() {
	mu.Lock()
	defer mu.Unlock()
	finalizeBackwardsFrom(len(initializers) - 1)
}

func Register(rc IInitializer, args ...interface{}) {
	mu.Lock()
	weight := len(initializers)
	mu.Unlock()
	RegisterWithWeight(rc, weight, args...)
}

func RegisterWithFuncs(initializeFunc func(args ...interface{}) error, finalizeFunc func(), args ...interface{}) {
	Register(NewInitializer(initializeFunc, finalizeFunc), args...)
}

func RegisterWithWeight(rc IInitializer, weight int, args ...interface{}) {
	mu.Lock()
	initializers = append(initializers, &entryT{initializer: rc, weight: weight, args: args})
	mu.Unlock()
}

// reset drops every entry, for tests.
func reset() {
	mu.Lock()
	initializers = nil
	mu.Unlock()
}

type Initializer struct {
	name           string
	InitializeFunc func(args ...interface{}) error
	FinalizeFunc   func()
}

func (i *Initializer) Name() string {
	return i.name
}

func (i *Initializer) Initialize(args ...interface{}) (err error) {
	if i.InitializeFunc != nil {
		err = i.InitializeFunc(args...)
	}
	return
}

func (i *Initializer) Finalize() {
	if i.FinalizeFunc != nil {
		i.FinalizeFunc()
	}
}

// NewInitializer names the initializer after the package of initializeFunc,
// or of finalizeFunc when initializeFunc is nil.
func NewInitializer(initializeFunc func(args ...interface{}) error, finalizeFunc func()) IInitializer {
	var fn interface{} = initializeFunc
	if initializeFunc == nil {
		fn = finalizeFunc
	}
	name := "unknown package"
	if v := reflect.ValueOf(fn); v.IsValid() && !v.IsNil() {
		if f := runtime.FuncForPC(v.Pointer()); f != nil {
			full := f.Name()
			slash := strings.LastIndex(full, "/") + 1
			if i := strings.Index(full[slash:], "."); i != -1 {
				name = full[:slash+i]
			}
		}
	}
	return &Initializer{name, initializeFunc, finalizeFunc}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. SIGPIPE is
// ignored so a closed output pipe surfaces as a write error.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	signal.Ignore(syscall.SIGPIPE)
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			glog.Warningf("initmgr: signal %d (%s) received", sig, sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
