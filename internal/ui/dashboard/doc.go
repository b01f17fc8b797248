// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package dashboard is the interactive Bubble Tea front end of painel.

The Model drives the same cli.App the command-line surface uses. Every route
change goes through the router's access gate; gate decisions, logins and
catalog fetches run as tea.Cmds and come back as messages. Session state is
pushed from the session manager through a subscription channel, which feeds
the status bar countdown and the expiring/expired overlays.

# Pages

	/login           - username and password form
	/usuario         - home menu with the catalog pages
	/clientes ...    - catalog tables, guarded by a port permission
	/acessoNegado    - access denied
	/404             - unknown path

# Usage

	app, err := cli.NewApp(ctx, args, cli.StdOutput(false))
	if err != nil {
		return err
	}
	defer app.Close()

	m := dashboard.New(ctx, app)
	_ = m.WatchConfig(config.ConfigPathTOML())
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package dashboard
