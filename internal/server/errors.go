// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServer is returned by NewServer when there is no HTTP handler or
// no listen address to serve it on.
var errNoHTTPServer = errors.New("http server is not configured")
