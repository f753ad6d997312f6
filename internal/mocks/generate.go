package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name EntryRepository --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename entry_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/leagueresult --output domain/leagueresult --outpkg leagueresultmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/cupresult --output domain/cupresult --outpkg cupresultmock --filename repository_mock.go
