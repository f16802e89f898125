package config

var LoadWith = load
