package itunes

import (
	"os"
	"path/filepath"
	"testing"
)

const libraryXML = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Tracks</key>
	<dict>
		<key>1001</key>
		<dict>
			<key>Track ID</key><integer>1001</integer>
			<key>Persistent ID</key><string>AAAA1111</string>
			<key>Name</key><string>Blue in Green</string>
			<key>Artist</key><string>Miles Davis</string>
			<key>Album</key><string>Kind of Blue</string>
			<key>Genre</key><string>Jazz</string>
			<key>Size</key><integer>5000000</integer>
			<key>Location</key><string>file://localhost/Users/me/Music/Blue%20in%20Green.mp3</string>
		</dict>
		<key>1002</key>
		<dict>
			<key>Track ID</key><integer>1002</integer>
			<key>Persistent ID</key><string>BBBB2222</string>
			<key>Name</key><string>So What</string>
			<key>Artist</key><string>Miles Davis</string>
			<key>Album</key><string>Kind of Blue</string>
			<key>Genre</key><string>Jazz</string>
			<key>Size</key><integer>9000000</integer>
			<key>Location</key><string>file:///Users/me/Music/So%20What.mp3</string>
		</dict>
		<key>1003</key>
		<dict>
			<key>Track ID</key><integer>1003</integer>
			<key>Persistent ID</key><string>CCCC3333</string>
			<key>Name</key><string>Cloud Only</string>
			<key>Artist</key><string>Nobody</string>
		</dict>
	</dict>
	<key>Playlists</key>
	<array>
		<dict>
			<key>Name</key><string>Library</string>
			<key>Master</key><true/>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>1001</integer></dict>
				<dict><key>Track ID</key><integer>1002</integer></dict>
			</array>
		</dict>
		<dict>
			<key>Name</key><string>Favorites</string>
			<key>Playlist Items</key>
			<array>
				<dict><key>Track ID</key><integer>1002</integer></dict>
				<dict><key>Track ID</key><integer>9999</integer></dict>
			</array>
		</dict>
	</array>
</dict>
</plist>`

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Library.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := NewLibrary(writeLibrary(t, libraryXML)).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	// The cloud-only entry has no location and is dropped.
	if catalog.Size() != 2 {
		t.Fatalf("expected 2 tracks, got %d", catalog.Size())
	}

	track, ok := catalog.Track("AAAA1111")
	if !ok {
		t.Fatal("expected track keyed by persistent ID")
	}
	if track.Title != "Blue in Green" || track.Size != 5000000 {
		t.Errorf("unexpected track: %+v", track)
	}
	if track.Path != "/Users/me/Music/Blue in Green.mp3" {
		t.Errorf("location not decoded: %q", track.Path)
	}

	bare, ok := catalog.Track("BBBB2222")
	if !ok {
		t.Fatal("missing second track")
	}
	if bare.Path != "/Users/me/Music/So What.mp3" {
		t.Errorf("bare file URL not decoded: %q", bare.Path)
	}
}

func TestLoadCatalogPlaylists(t *testing.T) {
	catalog, err := NewLibrary(writeLibrary(t, libraryXML)).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	// The Master playlist is library-internal and dropped.
	if len(catalog.Playlists()) != 1 {
		t.Fatalf("expected 1 playlist, got %d", len(catalog.Playlists()))
	}

	favs, ok := catalog.Playlist("Favorites")
	if !ok {
		t.Fatal("missing Favorites playlist")
	}
	// The unknown member 9999 is dropped during remapping.
	if len(favs.TrackIDs) != 1 || favs.TrackIDs[0] != "BBBB2222" {
		t.Errorf("unexpected playlist members: %v", favs.TrackIDs)
	}
}

func TestLoadCatalogRejectsNonPlist(t *testing.T) {
	path := writeLibrary(t, `<?xml version="1.0"?><html></html>`)
	if _, err := NewLibrary(path).LoadCatalog(); err == nil {
		t.Fatal("expected error for non-plist file")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := NewLibrary("/does/not/exist.xml").LoadCatalog(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
