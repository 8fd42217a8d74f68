package devtool

// Message constants
const (
	MsgRootShort = "Developer workflow helper for BitBake-based builds"
	MsgRootLong  = `devtool automates common developer workflows against a BitBake-based
build system: building images with work-in-progress packages and running
their on-target test suites under QEMU.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgTestImageShort = "Build image, install package(s), and run testimage"
	MsgTestImageLong  = `Builds an image, installs the specified package(s), and runs the
BitBake testimage task to validate on-target functionality.

Each requested package that declares a companion -ptest package has its
self-test assets installed as well, and the 'ptest' test suite runs them
on the booted image.`
	MsgTestImageExample = `  # Build core-image-minimal with bash (and bash-ptest) and test it
  devtool test-image core-image-minimal -p bash

  # Multiple packages, comma-separated
  devtool test-image core-image-minimal -p bash,zlib,dropbear`

	MsgFlagPackage   = "Package(s) to install into the image (comma-separated)"
	MsgFlagWorkspace = "Path to the devtool workspace layer"

	MsgTestImageDone = "Testimage completed. Logs are in %s"
)
