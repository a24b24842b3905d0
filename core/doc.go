// Package core holds the protocol pieces shared by every WOPR gateway call:
// the error taxonomy, the server-sent event stream decoder, the redacting
// [Secret] type and the [TelemetryHook] interface.
//
// # Errors
//
// Every non-2xx gateway response becomes an [*Error] through [Classify]. The
// kind depends on the status code alone:
//
//	401      KindAuthentication       ErrAuthentication
//	402      KindInsufficientCredits  ErrInsufficientCredits
//	429      KindRateLimit            ErrRateLimited
//	4xx      KindProvider             ErrProvider
//	other    KindServer               ErrServer
//
// Match on the sentinel with errors.Is, or recover the full value with
// errors.As to read Code, Type and the credit remediation fields:
//
//	var werr *core.Error
//	if errors.As(err, &werr) && werr.Kind == core.KindInsufficientCredits {
//	    fmt.Println("top up at", *werr.TopUpURL)
//	}
//
// Failures that never produced a status wrap [ErrNetwork] or [ErrDecode].
// A request body that cannot be encoded wraps [ErrEncode] and is never sent.
// Parameters rejected before sending are [*ValidationError] values wrapping
// [ErrInvalidParams]. Nothing in this module retries.
//
// # Streaming
//
// [Stream] decodes "data: " lines lazily as the caller iterates. It stops at
// "data: [DONE]", skips frames it cannot decode, and closes the response body
// exactly once on every exit path, including an early break:
//
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	}
//
// # Thread Safety
//
// [Classify] and [Secret] are safe everywhere. A [Stream] must be consumed by
// one goroutine at a time. [TelemetryHook] implementations may be called from
// many goroutines at once.
package core
