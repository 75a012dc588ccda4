package main

// version 由发布脚本通过 -ldflags 注入。
var version = "dev"
