// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apiserver

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Keys shared by the api, admin and metrics listeners
const (
	HTTPConfAddress         = "address"
	HTTPConfPort            = "port"
	HTTPConfPublicURL       = "publicURL"
	HTTPConfReadTimeout     = "readTimeout"
	HTTPConfWriteTimeout    = "writeTimeout"
	HTTPConfShutdownTimeout = "shutdownTimeout"
	HTTPConfTLSEnabled      = "tls.enabled"
	HTTPConfTLSCertFile     = "tls.certFile"
	HTTPConfTLSKeyFile      = "tls.keyFile"
	HTTPConfTLSCAFile       = "tls.caFile"
	HTTPConfTLSClientAuth   = "tls.clientAuth"
)

func initHTTPConfPrefix(prefix config.Prefix, defaultPort int) {
	prefix.AddKnownKey(HTTPConfAddress, "127.0.0.1")
	prefix.AddKnownKey(HTTPConfPort, defaultPort)
	prefix.AddKnownKey(HTTPConfPublicURL)
	prefix.AddKnownKey(HTTPConfReadTimeout, "15s")
	prefix.AddKnownKey(HTTPConfWriteTimeout, "15s")
	prefix.AddKnownKey(HTTPConfShutdownTimeout, "10s")
	prefix.AddKnownKey(HTTPConfTLSEnabled, false)
	prefix.AddKnownKey(HTTPConfTLSCertFile)
	prefix.AddKnownKey(HTTPConfTLSKeyFile)
	prefix.AddKnownKey(HTTPConfTLSCAFile)
	prefix.AddKnownKey(HTTPConfTLSClientAuth, false)
}

type listenerConf struct {
	address         string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	tlsEnabled      bool
	certFile        string
	keyFile         string
	caFile          string
	clientAuth      bool
}

func readListenerConf(prefix config.Prefix) *listenerConf {
	return &listenerConf{
		address:         fmt.Sprintf("%s:%d", prefix.GetString(HTTPConfAddress), prefix.GetUint(HTTPConfPort)),
		readTimeout:     prefix.GetDuration(HTTPConfReadTimeout),
		writeTimeout:    prefix.GetDuration(HTTPConfWriteTimeout),
		shutdownTimeout: prefix.GetDuration(HTTPConfShutdownTimeout),
		tlsEnabled:      prefix.GetBool(HTTPConfTLSEnabled),
		certFile:        prefix.GetString(HTTPConfTLSCertFile),
		keyFile:         prefix.GetString(HTTPConfTLSKeyFile),
		caFile:          prefix.GetString(HTTPConfTLSCAFile),
		clientAuth:      prefix.GetBool(HTTPConfTLSClientAuth),
	}
}

// httpServer is one listener, reporting its exit on the done channel
type httpServer struct {
	name     string
	conf     *listenerConf
	srv      *http.Server
	listener net.Listener
	done     chan<- error
}

func newHTTPServer(ctx context.Context, name string, r *mux.Router, done chan<- error, prefix config.Prefix) (*httpServer, error) {
	hs := &httpServer{
		name: name,
		conf: readListenerConf(prefix),
		done: done,
	}
	tlsConf, err := hs.tlsConfig(ctx)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTLSConfigFailed)
	}
	hs.srv = &http.Server{
		Handler:      wrapCorsIfEnabled(ctx, r),
		ReadTimeout:  hs.conf.readTimeout,
		WriteTimeout: hs.conf.writeTimeout,
		TLSConfig:    tlsConf,
		ConnContext: func(connCtx context.Context, c net.Conn) context.Context {
			l := log.L(ctx).WithField("conn", tktypes.ShortID())
			l.Debugf("%s connection from %s", name, c.RemoteAddr())
			return log.WithLogger(connCtx, l)
		},
	}
	if hs.listener, err = net.Listen("tcp", hs.conf.address); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgAPIServerStartFailed, hs.conf.address, err)
	}
	log.L(ctx).Infof("%s server listening on %s (tls=%t)", name, hs.listener.Addr(), tlsConf != nil)
	return hs, nil
}

// tlsConfig returns nil when TLS is disabled on the listener
func (hs *httpServer) tlsConfig(ctx context.Context) (*tls.Config, error) {
	if !hs.conf.tlsEnabled {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(hs.conf.certFile, hs.conf.keyFile)
	if err != nil {
		return nil, err
	}
	tlsConf := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
	}
	if hs.conf.caFile != "" {
		pem, err := os.ReadFile(hs.conf.caFile)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidCAFile)
		}
		tlsConf.ClientCAs = pool
	}
	if hs.conf.clientAuth {
		tlsConf.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return tlsConf, nil
}

func (hs *httpServer) serveHTTP(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("Stopping %s server", hs.name)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), hs.conf.shutdownTimeout)
			defer cancel()
			if err := hs.srv.Shutdown(shutdownCtx); err != nil {
				_ = hs.srv.Close()
			}
		case <-stopped:
		}
	}()

	var err error
	if hs.srv.TLSConfig != nil {
		err = hs.srv.ServeTLS(hs.listener, "", "")
	} else {
		err = hs.srv.Serve(hs.listener)
	}
	close(stopped)
	if err == http.ErrServerClosed {
		err = nil
	}
	log.L(ctx).Infof("%s server stopped", hs.name)
	hs.done <- err
}
