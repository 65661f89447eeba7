package models

import _ "embed"

// Schema 是 users 表的建表语句，auto_migrate 开启时在启动阶段执行
//
//go:embed schema.sql
var Schema string
