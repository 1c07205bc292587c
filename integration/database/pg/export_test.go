package pg

var Backoff = backoff
