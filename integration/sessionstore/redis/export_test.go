package redis

var KeyDeadline = keyDeadline
