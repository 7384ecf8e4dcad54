// Package usersrc models a package's userSrc settings and serializes them
// as the XML document consumed by tooling that cannot read the PHP source.
//
// A [Source] holds up to four bindings: environment variables and shell
// aliases (ordered name/value mappings) and raw bash and cmd.exe code
// (ordered line sequences). The [Emitter] writes them as:
//
//	<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
//	<userSrc>
//	  <env name="PATH">/usr/bin</env>
//	  <alias name="ll">ls -l</alias>
//	  <code shell="bash">ulimit -c unlimited</code>
//	  <code shell="cmd">set FOO=1</code>
//	</userSrc>
//
// Element order is fixed (env, alias, bash code, cmd code) and order within
// each binding follows the source. [Decode] reads such a document back.
//
// Loading sources from disk lives in the loader subpackage.
package usersrc
