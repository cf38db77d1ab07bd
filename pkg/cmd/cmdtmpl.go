//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package cmd

import (
	"os"
	"path/filepath"
	"text/template"
)

var usageFuncs = template.FuncMap{
	"prog": func() string { return filepath.Base(os.Args[0]) },
}

var usageTemplate = template.Must(template.New("cmd-usage").Funcs(usageFuncs).Parse(`
NAME
	{{prog}} {{.GetName}}{{with .GetDesc}} - {{.}}{{end}}

SYNOPSIS
	{{prog}} {{.GetName}} {{or .GetSynopsis "[<args>]"}}
{{with .GetOptionDesc}}
OPTIONS
{{.}}{{end}}{{with .GetDetails}}
DESCRIPTION
{{.}}{{end}}{{with .GetExample}}
EXAMPLES
	{{.}}{{end}}
`))
