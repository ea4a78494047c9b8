// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"carvel.dev/yaml2json/pkg/cmd"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// PrettyVariable names the environment variable that makes pretty output the
// default for requests that do not pass the "pretty" parameter.
const PrettyVariable = "YAML2JSON_PRETTY"

type HandlerFuncAdapter struct {
	RequestAccessor
	handler http.Handler
}

func New(handler http.Handler) *HandlerFuncAdapter {
	return &HandlerFuncAdapter{
		handler: handler,
	}
}

func (h *HandlerFuncAdapter) Proxy(event events.ALBTargetGroupRequest) (events.ALBTargetGroupResponse, error) {
	req, err := h.ProxyEventToHTTPRequest(event)
	if err != nil {
		return events.ALBTargetGroupResponse{StatusCode: 421}, fmt.Errorf("Could not convert event to request: %v", err)
	}

	w := NewProxyResponseWriter()
	h.handler.ServeHTTP(http.ResponseWriter(w), req)

	resp, err := w.GetProxyResponse()
	if err != nil {
		return events.ALBTargetGroupResponse{StatusCode: 422}, fmt.Errorf("Error while generating response: %v", err)
	}

	return resp, nil
}

func serveOptionsFromEnv() *cmd.ServeOptions {
	serveOpts := cmd.NewServeOptions()
	if val, found := os.LookupEnv(PrettyVariable); found {
		serveOpts.Pretty, _ = strconv.ParseBool(val)
	}
	return serveOpts
}

func main() {
	lambda.Start(New(serveOptionsFromEnv().Server().Mux()).Proxy)
}
