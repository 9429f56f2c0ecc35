// Package binder decodes HTTP request bodies into structs.
//
// JSON decodes application/json bodies, Form decodes url-encoded and multipart form
// values into fields tagged `form:"name"`, and Auto chooses between them from the
// request Content-Type.
package binder
