package redis

var Backoff = backoff
