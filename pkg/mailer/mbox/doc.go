// Package mbox is a development mail transport that appends every message to an
// mbox file. Point any mail client, or a viewer such as mboxview, at the file to
// read what the relay would have sent.
package mbox
