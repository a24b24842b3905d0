// Package transport sends authenticated requests to the WOPR gateway.
//
// A [Dispatcher] owns the base URL, the API key and the HTTP client. Every
// send method performs exactly one exchange and shares the same failure
// handling: a response outside 2xx is read, parsed as the gateway error
// envelope and returned as a classified [*core.Error]. Transport failures wrap
// [core.ErrNetwork]. The response body of a failure is always closed.
//
//	d := transport.New(key, "https://api.wopr.bot/v1",
//	    transport.WithTimeout(30*time.Second),
//	)
//	var models modelList
//	if err := d.Get(ctx, "/models", &models); err != nil {
//	    return err
//	}
//
// Streaming and binary calls return the open *http.Response; the caller
// closes it, usually by handing it to [core.DecodeStream].
package transport
