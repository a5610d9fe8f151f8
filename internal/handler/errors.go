// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karchin

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// provided in the server configuration, leaving the application without a
// transport. This is treated as a fatal misconfiguration at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
