// Copyright 2026 gsheet-api. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package gsheet is a client library for the Google Sheets API v4.

The client authenticates with a Google service account key file: the key is
exchanged for short-lived bearer tokens which are cached and refreshed
transparently, with at most one token exchange in flight regardless of how
many goroutines are making requests.

	client, err := gsheet.New(gsheet.Config{
	    Credentials: "service-account.json",
	})
	if err != nil {
	    log.Fatal(err)
	}

	values, err := client.Values(ctx, spreadsheetID, "Sheet1!A1:B10", nil)

Range text is parsed and validated with the a1 subpackage before any request
is made, and the wire types are the generated google.golang.org/api/sheets/v4
models, so responses interoperate with code already using the generated API.
*/
package gsheet
